// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vorokhovskii-creator/felix-hub/internal/auth"
	"github.com/vorokhovskii-creator/felix-hub/internal/handler"
	"github.com/vorokhovskii-creator/felix-hub/internal/middleware"
	"github.com/vorokhovskii-creator/felix-hub/web"
)

// routerDeps carries everything newRouter wires into the chi router.
type routerDeps struct {
	sessionManager  *scs.SessionManager
	admin           *auth.Admin
	loginProtection *middleware.LoginProtection
	csrfKey         []byte
	isDev           bool
	addr            string

	adminHandler    *handler.AdminHandler
	authHandler     *handler.AuthHandler
	languageHandler *handler.LanguageHandler
	healthHandler   *handler.HealthHandler
}

func newRouter(d routerDeps) (http.Handler, error) {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(middleware.RequestTimeout))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(d.isDev)))

	// Health checks stay outside sessions and CSRF
	r.Get(handler.RouteHealth, d.healthHandler.Health)
	r.Get(handler.RouteHealthLive, d.healthHandler.Liveness)

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle(handler.RouteStatic, http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.Group(func(r chi.Router) {
		r.Use(d.sessionManager.LoadAndSave)
		r.Use(middleware.Language(middleware.LanguageConfig{
			Sessions:       d.sessionManager,
			NegotiatePaths: []string{middleware.LoginPath},
		}))
		r.Use(middleware.Device)
		r.Use(middleware.CSRF(middleware.DefaultCSRFConfig(d.csrfKey, d.isDev, d.addr)))

		r.Get(handler.RouteRoot, func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, handler.RouteAdmin, http.StatusFound)
		})

		r.Post(handler.RouteSetLanguage, d.languageHandler.SetLanguage)

		r.Get(handler.RouteLogin, d.authHandler.LoginForm)
		r.With(d.loginProtection.Middleware()).Post(handler.RouteLogin, d.authHandler.Login)
		r.Post(handler.RouteLogout, d.authHandler.Logout)

		r.Route(handler.RouteAdmin, func(r chi.Router) {
			if d.admin != nil {
				r.Use(middleware.Auth(d.sessionManager))
			}
			d.adminHandler.Routes(r)
		})
	})

	return r, nil
}
