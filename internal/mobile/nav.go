// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mobile

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vorokhovskii-creator/felix-hub/internal/dom"
)

// CollapseNav replaces a long .nav with a toggle button and a .nav-items
// panel on narrow viewports. label is the already translated "menu" text;
// the button also carries the key so later repaints translate it. It reports
// whether the document changed.
func CollapseNav(doc *html.Node, d Device, label string) bool {
	if !d.NarrowNav() {
		return false
	}
	if dom.FindFirst(doc, dom.ByClass("nav-large")) != nil {
		return false
	}
	nav := dom.FindFirst(doc, dom.ByClass("nav"))
	if nav == nil || nav.Parent == nil {
		return false
	}
	links := dom.FindAll(nav, dom.ByTag(atom.A))
	if len(links) < NavCollapseMinItems {
		return false
	}

	wrapper := dom.NewElement(atom.Div, "nav-large")

	toggle := dom.NewElement(atom.Button, "nav-toggle")
	dom.SetAttr(toggle, "type", "button")
	dom.SetAttr(toggle, "aria-label", "Toggle navigation")
	dom.SetAttr(toggle, "aria-expanded", "false")
	span := dom.NewElement(atom.Span, "")
	dom.SetAttr(span, "data-i18n", "menu")
	dom.SetText(span, label)
	toggle.AppendChild(span)
	wrapper.AppendChild(toggle)

	items := dom.NewElement(atom.Div, "nav-items")
	for _, a := range links {
		items.AppendChild(dom.Clone(a))
	}
	wrapper.AppendChild(items)

	nav.Parent.InsertBefore(wrapper, nav)
	nav.Parent.RemoveChild(nav)
	return true
}
