// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
)

// Admin is the single console account configured through the environment.
type Admin struct {
	username string
	hash     string
}

// NewAdmin validates the configured hash. An empty hash disables the gate
// and returns nil.
func NewAdmin(username, passwordHash string) (*Admin, error) {
	if passwordHash == "" {
		return nil, nil
	}
	if _, err := parseHash(passwordHash); err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}
	if NeedsRehash(passwordHash) {
		slog.Warn("admin password hash uses outdated argon2 parameters; regenerate it with -hash-password")
	}
	return &Admin{username: username, hash: passwordHash}, nil
}

// Username returns the configured admin username.
func (a *Admin) Username() string {
	return a.username
}

// Authenticate reports whether the credentials match. The password hash is
// always computed so a wrong username takes as long as a wrong password.
func (a *Admin) Authenticate(username, password string) bool {
	ok, err := CheckPassword(password, a.hash)
	if err != nil {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	return ok && userOK
}
