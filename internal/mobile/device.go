// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mobile adapts rendered admin pages to phones and tablets: device
// detection, navigation collapse, responsive tables and body flags.
package mobile

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/mileusna/useragent"
)

// Layout constants shared with the browser asset through data attributes.
const (
	NavBreakpoint        = 768 // px; navigation collapses at or below
	NavCollapseMinItems  = 5   // links needed before the nav collapses
	CardBreakpoint       = 640 // px; tables switch to card layout at or below
	KeyboardScrollDelay  = 300 // ms before a focused input is scrolled into view
	SwipeDismissDistance = 100 // px of downward swipe that closes a modal
	ScrollIdleDelay      = 150 // ms after the last scroll event
	OrientationDelay     = 200 // ms before re-running the table pass
	ResizeDebounce       = 250 // ms
)

// Cookie names written by the browser asset.
const (
	ViewportCookie   = "felix_vw"
	StandaloneCookie = "felix_standalone"
)

const maxViewportWidth = 10000

// Width estimates used when the client has not reported its viewport.
const (
	estimatedPhoneWidth  = 390
	estimatedTabletWidth = 810
)

// Device describes the requesting client as far as the server can tell.
type Device struct {
	Mobile     bool
	Tablet     bool
	IOS        bool
	Standalone bool
	// Width is the viewport width in CSS pixels; 0 means unknown (desktop).
	Width int
	// WidthEstimated is set when Width comes from the device class.
	WidthEstimated bool
}

// Detect inspects the user agent, client hints and asset cookies.
func Detect(r *http.Request) Device {
	ua := useragent.Parse(r.UserAgent())

	d := Device{
		Mobile: ua.Mobile || ua.Tablet,
		IOS:    ua.OS == useragent.IOS,
	}
	d.Width = reportedWidth(r)

	d.Tablet = ua.Tablet || (ua.OS == useragent.Android && d.Width >= NavBreakpoint)

	if d.Width == 0 {
		switch {
		case d.Tablet:
			d.Width, d.WidthEstimated = estimatedTabletWidth, true
		case d.Mobile:
			d.Width, d.WidthEstimated = estimatedPhoneWidth, true
		}
	}

	d.Standalone = isStandalone(r)
	return d
}

// reportedWidth reads the viewport width from client hints, then the cookie.
func reportedWidth(r *http.Request) int {
	for _, h := range []string{"Sec-CH-Viewport-Width", "Viewport-Width"} {
		if w := parseWidth(r.Header.Get(h)); w > 0 {
			return w
		}
	}
	if c, err := r.Cookie(ViewportCookie); err == nil {
		return parseWidth(c.Value)
	}
	return 0
}

func parseWidth(s string) int {
	w, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || w <= 0 || w > maxViewportWidth {
		return 0
	}
	return w
}

func isStandalone(r *http.Request) bool {
	if r.URL.Query().Get("display-mode") == "standalone" {
		return true
	}
	if c, err := r.Cookie(StandaloneCookie); err == nil && c.Value == "1" {
		return true
	}
	return strings.HasPrefix(r.Referer(), "android-app://")
}

// NarrowNav reports whether the viewport is at or below the nav breakpoint.
func (d Device) NarrowNav() bool {
	return d.Width > 0 && d.Width <= NavBreakpoint
}

// CardTables reports whether tables should use the card layout.
func (d Device) CardTables() bool {
	return d.Width > 0 && d.Width <= CardBreakpoint
}

type contextKey struct{}

// NewContext returns ctx carrying d.
func NewContext(ctx context.Context, d Device) context.Context {
	return context.WithValue(ctx, contextKey{}, d)
}

// FromContext returns the device stored by NewContext, or a desktop Device.
func FromContext(ctx context.Context) Device {
	d, _ := ctx.Value(contextKey{}).(Device)
	return d
}
