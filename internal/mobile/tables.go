// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mobile

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vorokhovskii-creator/felix-hub/internal/dom"
)

// Table classes.
const (
	TableWrapperClass = "table-wrapper"
	TableCardsClass   = "table-cards"
)

// ResponsiveTables wraps every table in a scroll wrapper and, on card-width
// viewports, switches it to card layout with a data-label on each cell taken
// from its column header. Running it again changes nothing.
func ResponsiveTables(doc *html.Node, d Device) {
	for _, table := range dom.FindAll(doc, dom.ByTag(atom.Table)) {
		if dom.HasClass(table, TableCardsClass) {
			continue
		}
		if p := table.Parent; p == nil || !dom.HasClass(p, TableWrapperClass) {
			dom.Wrap(table, dom.NewElement(atom.Div, TableWrapperClass))
		}
		if d.CardTables() {
			dom.AddClass(table, TableCardsClass)
			labelCells(table)
		}
	}
}

func labelCells(table *html.Node) {
	var headers []string
	if thead := dom.FindFirst(table, dom.ByTag(atom.Thead)); thead != nil {
		for _, th := range dom.FindAll(thead, dom.ByTag(atom.Th)) {
			headers = append(headers, strings.TrimSpace(dom.TextContent(th)))
		}
	}
	if len(headers) == 0 {
		return
	}

	for _, tbody := range dom.FindAll(table, dom.ByTag(atom.Tbody)) {
		for _, row := range dom.FindAll(tbody, dom.ByTag(atom.Tr)) {
			i := 0
			for cell := row.FirstChild; cell != nil; cell = cell.NextSibling {
				if !dom.IsElement(cell, atom.Td) {
					continue
				}
				if i < len(headers) && headers[i] != "" {
					dom.SetAttr(cell, "data-label", headers[i])
				}
				i++
			}
		}
	}
}
