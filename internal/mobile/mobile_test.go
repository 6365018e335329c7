// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mobile

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/net/html/atom"

	"github.com/vorokhovskii-creator/felix-hub/internal/dom"
)

const (
	uaIPhone  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	uaIPad    = "Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1"
	uaDesktop = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

const page = `<!DOCTYPE html><html><head></head><body>
<nav class="nav"><a href="/a">A</a><a href="/b">B</a><a href="/c">C</a><a href="/d">D</a><a href="/e">E</a></nav>
<div id="list"><table>
<thead><tr><th>ID</th><th> Name </th><th></th></tr></thead>
<tbody>
<tr><td>1</td><td>Brake Pad</td><td>edit</td></tr>
<tr><td>2</td><td>Oil Filter</td><td>edit</td></tr>
</tbody></table></div>
</body></html>`

func TestDetect(t *testing.T) {
	tests := []struct {
		name       string
		ua         string
		header     map[string]string
		cookies    []*http.Cookie
		url        string
		referer    string
		wantMobile bool
		wantTablet bool
		wantIOS    bool
		wantWidth  int
		wantStand  bool
	}{
		{name: "desktop", ua: uaDesktop, url: "/"},
		{name: "iphone estimated", ua: uaIPhone, url: "/", wantMobile: true, wantIOS: true, wantWidth: estimatedPhoneWidth},
		{name: "ipad estimated", ua: uaIPad, url: "/", wantMobile: true, wantTablet: true, wantIOS: true, wantWidth: estimatedTabletWidth},
		{
			name: "client hint width", ua: uaDesktop, url: "/",
			header:    map[string]string{"Sec-CH-Viewport-Width": "600"},
			wantWidth: 600,
		},
		{
			name: "cookie width", ua: uaIPhone, url: "/",
			cookies:    []*http.Cookie{{Name: ViewportCookie, Value: "360"}},
			wantMobile: true, wantIOS: true, wantWidth: 360,
		},
		{
			name: "bogus cookie ignored", ua: uaDesktop, url: "/",
			cookies: []*http.Cookie{{Name: ViewportCookie, Value: "-5"}},
		},
		{name: "standalone query", ua: uaDesktop, url: "/?display-mode=standalone", wantStand: true},
		{name: "android app referrer", ua: uaDesktop, url: "/", referer: "android-app://com.example", wantStand: true},
		{
			name: "standalone cookie", ua: uaDesktop, url: "/",
			cookies:   []*http.Cookie{{Name: StandaloneCookie, Value: "1"}},
			wantStand: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			r.Header.Set("User-Agent", tt.ua)
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			for _, c := range tt.cookies {
				r.AddCookie(c)
			}
			if tt.referer != "" {
				r.Header.Set("Referer", tt.referer)
			}

			d := Detect(r)
			if d.Mobile != tt.wantMobile || d.Tablet != tt.wantTablet || d.IOS != tt.wantIOS {
				t.Errorf("Detect = %+v", d)
			}
			if d.Width != tt.wantWidth {
				t.Errorf("Width = %d, want %d", d.Width, tt.wantWidth)
			}
			if d.Standalone != tt.wantStand {
				t.Errorf("Standalone = %v, want %v", d.Standalone, tt.wantStand)
			}
		})
	}
}

func TestDeviceThresholds(t *testing.T) {
	tests := []struct {
		width     int
		narrowNav bool
		cards     bool
	}{
		{0, false, false},
		{320, true, true},
		{640, true, true},
		{641, true, false},
		{768, true, false},
		{769, false, false},
	}
	for _, tt := range tests {
		d := Device{Width: tt.width}
		if d.NarrowNav() != tt.narrowNav || d.CardTables() != tt.cards {
			t.Errorf("width %d: NarrowNav=%v CardTables=%v", tt.width, d.NarrowNav(), d.CardTables())
		}
	}
}

func TestResponsiveTablesIdempotent(t *testing.T) {
	doc, err := dom.ParseString(page)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	d := Device{Width: 375}

	ResponsiveTables(doc, d)
	first, _ := dom.RenderString(doc)
	ResponsiveTables(doc, d)
	second, _ := dom.RenderString(doc)

	if first != second {
		t.Errorf("second pass changed the document:\n%s\n---\n%s", first, second)
	}
	if n := len(dom.FindAll(doc, dom.ByClass(TableWrapperClass))); n != 1 {
		t.Errorf("wrappers = %d, want 1", n)
	}
	table := dom.FindFirst(doc, dom.ByTag(atom.Table))
	if c, _ := dom.Attr(table, "class"); c != TableCardsClass {
		t.Errorf("table class = %q", c)
	}

	cells := dom.FindAll(doc, dom.ByTag(atom.Td))
	if v, _ := dom.Attr(cells[1], "data-label"); v != "Name" {
		t.Errorf("data-label = %q, want Name", v)
	}
	if dom.HasAttr(cells[2], "data-label") {
		t.Error("empty header must not produce a label")
	}
}

func TestResponsiveTablesWideViewport(t *testing.T) {
	doc, _ := dom.ParseString(page)
	ResponsiveTables(doc, Device{Width: 1024})
	ResponsiveTables(doc, Device{Width: 1024})

	if n := len(dom.FindAll(doc, dom.ByClass(TableWrapperClass))); n != 1 {
		t.Errorf("wrappers = %d, want 1", n)
	}
	if len(dom.FindAll(doc, dom.ByClass(TableCardsClass))) != 0 {
		t.Error("wide viewport must not use cards")
	}
	if len(dom.FindAll(doc, dom.ByAttr("data-label"))) != 0 {
		t.Error("wide viewport must not label cells")
	}
}

func TestCollapseNav(t *testing.T) {
	doc, _ := dom.ParseString(page)
	d := Device{Width: 375}

	if !CollapseNav(doc, d, "Menu") {
		t.Fatal("nav with 5 links on a phone should collapse")
	}
	if dom.FindFirst(doc, dom.ByClass("nav")) != nil {
		t.Error("original nav should be removed")
	}
	items := dom.FindFirst(doc, dom.ByClass("nav-items"))
	if items == nil || len(dom.FindAll(items, dom.ByTag(atom.A))) != 5 {
		t.Fatal("nav-items should hold the 5 links")
	}
	toggle := dom.FindFirst(doc, dom.ByClass("nav-toggle"))
	if got := strings.TrimSpace(dom.TextContent(toggle)); got != "Menu" {
		t.Errorf("toggle label = %q", got)
	}
	if v, _ := dom.Attr(toggle, "aria-expanded"); v != "false" {
		t.Errorf("aria-expanded = %q", v)
	}

	if CollapseNav(doc, d, "Menu") {
		t.Error("second pass must not change the document")
	}
}

func TestCollapseNavSkipped(t *testing.T) {
	short := strings.Replace(page, `<a href="/e">E</a>`, "", 1)

	tests := []struct {
		name string
		html string
		d    Device
	}{
		{"desktop", page, Device{}},
		{"wide tablet", page, Device{Width: 1024}},
		{"four links", short, Device{Width: 375}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _ := dom.ParseString(tt.html)
			if CollapseNav(doc, tt.d, "Menu") {
				t.Error("nav should not collapse")
			}
			if dom.FindFirst(doc, dom.ByClass("nav")) == nil {
				t.Error("nav should be left in place")
			}
		})
	}
}

func TestMarkBody(t *testing.T) {
	doc, _ := dom.ParseString(page)
	d := Device{Mobile: true, Tablet: true, Standalone: true, IOS: true, Width: 810}

	MarkBody(doc, d)
	MarkBody(doc, d)

	body := dom.FindFirst(doc, dom.ByTag(atom.Body))
	if c, _ := dom.Attr(body, "class"); c != "is-mobile is-tablet is-standalone" {
		t.Errorf("body class = %q", c)
	}
	if v, _ := dom.Attr(body, "data-swipe-threshold"); v != "100" {
		t.Errorf("data-swipe-threshold = %q", v)
	}
	if v, _ := dom.Attr(body, "data-nav-breakpoint"); v != "768" {
		t.Errorf("data-nav-breakpoint = %q", v)
	}
	if v, _ := dom.Attr(body, "data-ios"); v != "true" {
		t.Errorf("data-ios = %q", v)
	}
}

func TestAdaptDesktopLeavesNavAndCards(t *testing.T) {
	doc, _ := dom.ParseString(page)
	Adapt(doc, Device{}, "Menu")

	body := dom.FindFirst(doc, dom.ByTag(atom.Body))
	if dom.HasClass(body, "is-mobile") {
		t.Error("desktop must not be flagged mobile")
	}
	if dom.FindFirst(doc, dom.ByClass("nav")) == nil {
		t.Error("desktop nav should stay")
	}
}
