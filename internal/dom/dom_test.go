// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package dom

import (
	"strings"
	"testing"

	"golang.org/x/net/html/atom"
)

func TestClasses(t *testing.T) {
	doc, err := ParseString(`<html><body><div class="a  b">x</div></body></html>`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	div := FindFirst(doc, ByTag(atom.Div))
	if div == nil {
		t.Fatal("div not found")
	}

	if !HasClass(div, "a") || !HasClass(div, "b") {
		t.Errorf("Classes = %v, want a and b", Classes(div))
	}
	AddClass(div, "b")
	AddClass(div, "c")
	if got, _ := Attr(div, "class"); got != "a b c" {
		t.Errorf("class = %q, want %q", got, "a b c")
	}
}

func TestWrapAndText(t *testing.T) {
	doc, err := ParseString(`<html><body><p>old <b>text</b></p></body></html>`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	p := FindFirst(doc, ByTag(atom.P))
	if TextContent(p) != "old text" {
		t.Errorf("TextContent = %q", TextContent(p))
	}

	Wrap(p, NewElement(atom.Section, "outer"))
	SetText(p, "new")

	out, err := RenderString(doc)
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	if !strings.Contains(out, `<section class="outer"><p>new</p></section>`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestClone(t *testing.T) {
	doc, _ := ParseString(`<html><body><a href="/x" class="l">link</a></body></html>`)
	a := FindFirst(doc, ByTag(atom.A))
	c := Clone(a)

	if c.Parent != nil || c.NextSibling != nil {
		t.Error("clone should be detached")
	}
	SetAttr(c, "href", "/y")
	if v, _ := Attr(a, "href"); v != "/x" {
		t.Errorf("original href changed to %q", v)
	}
	if TextContent(c) != "link" {
		t.Errorf("clone text = %q", TextContent(c))
	}
}
