// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalogapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable wraps transport failures (connection refused, DNS, reset).
var ErrUnavailable = errors.New("catalog api unavailable")

// APIError is returned when the API answers with a non-2xx status, or with a
// 2xx status carrying an error payload.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog api: status %d", e.Status)
	}
	return fmt.Sprintf("catalog api: status %d: %s", e.Status, e.Message)
}

// MessageOf returns the server-provided message carried by err, or fallback
// when there is none.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// errorPayload matches the {"error": "..."} / {"message": "..."} bodies of the API.
type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Success *bool  `json:"success"`
}

// parseErrorMessage extracts the server message from a response body.
func parseErrorMessage(body []byte) string {
	var p errorPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return ""
	}
	if p.Error != "" {
		return p.Error
	}
	return p.Message
}

// payloadError detects an error payload inside a 2xx response.
func payloadError(status int, body []byte) error {
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "{") {
		return nil
	}
	var p errorPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil
	}
	if p.Error != "" || (p.Success != nil && !*p.Success) {
		msg := p.Error
		if msg == "" {
			msg = p.Message
		}
		return &APIError{Status: status, Message: msg}
	}
	return nil
}
