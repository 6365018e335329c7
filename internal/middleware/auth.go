// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for the admin login gate,
// language and device resolution, and request hardening.
package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/vorokhovskii-creator/felix-hub/internal/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request data.
const (
	ContextKeyUser     ContextKey = "user"
	ContextKeyLanguage ContextKey = "language"
)

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/login"

// Auth creates middleware that requires a logged-in admin.
// It redirects to the login page when the session carries no user.
func Auth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := session.User(r.Context(), sm)
			if user == "" {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the logged-in username from the request context, or "".
func GetUser(r *http.Request) string {
	user, _ := r.Context().Value(ContextKeyUser).(string)
	return user
}
