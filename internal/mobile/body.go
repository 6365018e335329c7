// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mobile

import (
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vorokhovskii-creator/felix-hub/internal/dom"
)

// MarkBody flags <body> with the device classes and publishes the layout
// constants as data attributes for the browser asset.
func MarkBody(doc *html.Node, d Device) {
	body := dom.FindFirst(doc, dom.ByTag(atom.Body))
	if body == nil {
		return
	}

	if d.Mobile {
		dom.AddClass(body, "is-mobile")
	}
	if d.Tablet {
		dom.AddClass(body, "is-tablet")
	}
	if d.Standalone {
		dom.AddClass(body, "is-standalone")
	}
	if d.IOS {
		dom.SetAttr(body, "data-ios", "true")
	}

	for _, a := range []struct {
		key string
		val int
	}{
		{"data-nav-breakpoint", NavBreakpoint},
		{"data-nav-min-items", NavCollapseMinItems},
		{"data-card-breakpoint", CardBreakpoint},
		{"data-keyboard-delay", KeyboardScrollDelay},
		{"data-swipe-threshold", SwipeDismissDistance},
		{"data-scroll-idle", ScrollIdleDelay},
		{"data-orientation-delay", OrientationDelay},
		{"data-resize-debounce", ResizeDebounce},
	} {
		dom.SetAttr(body, a.key, strconv.Itoa(a.val))
	}
}

// Adapt runs every server-side pass on doc.
func Adapt(doc *html.Node, d Device, menuLabel string) {
	MarkBody(doc, d)
	CollapseNav(doc, d, menuLabel)
	ResponsiveTables(doc, d)
}
