// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/vorokhovskii-creator/felix-hub/internal/auth"
	"github.com/vorokhovskii-creator/felix-hub/internal/i18n"
	"github.com/vorokhovskii-creator/felix-hub/internal/middleware"
	"github.com/vorokhovskii-creator/felix-hub/internal/render"
	"github.com/vorokhovskii-creator/felix-hub/internal/session"
)

// AuthHandler handles the admin login gate.
type AuthHandler struct {
	admin           *auth.Admin
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
	logger          *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. lp may be nil.
func NewAuthHandler(admin *auth.Admin, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		admin:           admin,
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
		logger:          logger,
	}
}

type loginData struct {
	Username string
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, username string, alert *render.Flash) {
	renderPage(w, r, h.renderer, status, pageLogin, render.TemplateData{
		Title:   "login_title",
		Data:    loginData{Username: username},
		Alert:   alert,
		HideNav: true,
	})
}

// LoginForm renders the login page. Logged-in admins go to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.admin == nil || session.User(r.Context(), h.sessionManager) != "" {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, "", nil)
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.admin == nil {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}
	lang := middleware.GetLanguage(r)

	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, "", &render.Flash{Message: i18n.T(lang, "invalid_credentials"), Type: render.FlashError})
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsLocked(username); locked {
			h.logger.WarnContext(r.Context(), "login attempt on locked account", "username", username)
			h.renderLogin(w, r, http.StatusTooManyRequests, username, &render.Flash{
				Message: middleware.LockoutMessage(lang, remaining),
				Type:    render.FlashError,
			})
			return
		}
	}

	if username == "" || password == "" || !h.admin.Authenticate(username, password) {
		msg := i18n.T(lang, "invalid_credentials")
		status := http.StatusUnauthorized
		if h.loginProtection != nil {
			if locked, lockout := h.loginProtection.RecordFailedAttempt(username); locked {
				msg = middleware.LockoutMessage(lang, lockout)
				status = http.StatusTooManyRequests
			}
			h.logger.WarnContext(r.Context(), "login failed", "username", username,
				"remaining_attempts", h.loginProtection.RemainingAttempts(username))
		} else {
			h.logger.WarnContext(r.Context(), "login failed", "username", username)
		}
		h.renderLogin(w, r, status, username, &render.Flash{Message: msg, Type: render.FlashError})
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(username)
	}

	// Renews the token to prevent session fixation.
	if err := session.Login(r.Context(), h.sessionManager, h.admin.Username()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}

	h.logger.InfoContext(r.Context(), "admin logged in", "username", username)
	http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
}

// Logout ends the admin session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := session.User(r.Context(), h.sessionManager)
	if err := session.Logout(r.Context(), h.sessionManager); err != nil {
		h.logger.ErrorContext(r.Context(), "session logout error", "error", err)
	}

	h.logger.InfoContext(r.Context(), "admin logged out", "username", user)
	flashAndRedirect(w, r, h.renderer, redirectLogin, i18n.T(middleware.GetLanguage(r), "logged_out"), render.FlashInfo)
}
