// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/vorokhovskii-creator/felix-hub/internal/catalogapi"
)

// AllCategories is the category filter value that disables the filter.
const AllCategories = "all"

// Filter is the local filter state of the part list.
type Filter struct {
	// Category is an exact category name, or "" / AllCategories.
	Category string
	// Query is matched case-insensitively against name or category.
	Query string
	// Lang selects the displayed name variant that is searched too.
	Lang string
}

// FilterParts applies the category filter, then the search query, to parts.
// Server order is preserved.
func FilterParts(parts []catalogapi.Part, f Filter) []catalogapi.Part {
	out := make([]catalogapi.Part, 0, len(parts))

	// A Caser is stateful; one per call.
	fold := cases.Fold()
	query := fold.String(f.Query)

	for _, p := range parts {
		if f.Category != "" && f.Category != AllCategories && p.Category != f.Category {
			continue
		}
		if query != "" && !matchesQuery(fold, p, f.Lang, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(fold cases.Caser, p catalogapi.Part, lang, query string) bool {
	if strings.Contains(fold.String(p.Name), query) ||
		strings.Contains(fold.String(p.Category), query) {
		return true
	}
	if lang == "" {
		return false
	}
	name := p.LocalizedName(lang)
	return name != p.Name && strings.Contains(fold.String(name), query)
}

// ListState distinguishes a list that was never loaded from an empty one.
type ListState int

// List states.
const (
	StateLoading ListState = iota
	StateEmpty
	StateReady
)

// Loading reports whether the list has not been loaded yet.
func (s ListState) Loading() bool { return s == StateLoading }

// Empty reports whether the loaded list has no rows to show.
func (s ListState) Empty() bool { return s == StateEmpty }

func listState(loaded bool, rows int) ListState {
	switch {
	case !loaded:
		return StateLoading
	case rows == 0:
		return StateEmpty
	default:
		return StateReady
	}
}

// Badge is a status badge: a CSS class and a translation key.
type Badge struct {
	Class string
	Key   string
}

// StatusBadge returns the badge for an active flag.
func StatusBadge(active bool) Badge {
	if active {
		return Badge{Class: "status-active", Key: "active"}
	}
	return Badge{Class: "status-inactive", Key: "inactive"}
}

// PartRow is one rendered part row.
type PartRow struct {
	ID          int64
	Name        string
	Description string
	Category    string
	SortOrder   int
	Active      bool
	Badge       Badge
}

// RowClass is "inactive" for inactive rows.
func (r PartRow) RowClass() string {
	if r.Active {
		return ""
	}
	return "inactive"
}

// PartsView is the view-model of the part list.
type PartsView struct {
	Rows   []PartRow
	State  ListState
	Filter Filter
	Status Status
}

// BuildPartsView filters parts and maps them to rows.
func BuildPartsView(parts []catalogapi.Part, loaded bool, f Filter, status Status) PartsView {
	filtered := FilterParts(parts, f)
	rows := make([]PartRow, 0, len(filtered))
	for _, p := range filtered {
		rows = append(rows, PartRow{
			ID:          p.ID,
			Name:        p.LocalizedName(f.Lang),
			Description: p.LocalizedDescription(f.Lang),
			Category:    p.Category,
			SortOrder:   p.SortOrder,
			Active:      p.IsActive,
			Badge:       StatusBadge(p.IsActive),
		})
	}
	return PartsView{
		Rows:   rows,
		State:  listState(loaded, len(rows)),
		Filter: f,
		Status: status,
	}
}

// CategoryRow is one rendered category row. Counts are shown as supplied.
type CategoryRow struct {
	ID               int64
	Name             string
	PartsCount       int
	ActivePartsCount int
	SortOrder        int
	Active           bool
	Badge            Badge
}

// RowClass is "inactive" for inactive rows.
func (r CategoryRow) RowClass() string {
	if r.Active {
		return ""
	}
	return "inactive"
}

// CategoriesView is the view-model of the category list.
type CategoriesView struct {
	Rows  []CategoryRow
	State ListState
}

// BuildCategoriesView maps categories to rows.
func BuildCategoriesView(cats []catalogapi.Category, loaded bool) CategoriesView {
	rows := make([]CategoryRow, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, CategoryRow{
			ID:               c.ID,
			Name:             c.Name,
			PartsCount:       c.PartsCount,
			ActivePartsCount: c.ActivePartsCount,
			SortOrder:        c.SortOrder,
			Active:           c.IsActive,
			Badge:            StatusBadge(c.IsActive),
		})
	}
	return CategoriesView{Rows: rows, State: listState(loaded, len(rows))}
}

// Option is a <select> option.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// CategoryOptions lists active categories by name, marking selected.
// A selection that is not among the active categories is appended so the
// current value is kept.
func CategoryOptions(cats []catalogapi.Category, selected string) []Option {
	opts := make([]Option, 0, len(cats)+1)
	found := false
	for _, c := range cats {
		if !c.IsActive {
			continue
		}
		opts = append(opts, Option{Value: c.Name, Label: c.Name, Selected: c.Name == selected})
		found = found || c.Name == selected
	}
	if !found && selected != "" && selected != AllCategories {
		opts = append(opts, Option{Value: selected, Label: selected, Selected: true})
	}
	return opts
}

// StatusOptions lists the status filter values with their translation keys
// as labels.
func StatusOptions(selected Status) []Option {
	values := []struct {
		status Status
		key    string
	}{
		{StatusAll, "all_parts"},
		{StatusActive, "active_only"},
		{StatusInactive, "inactive_only"},
	}
	opts := make([]Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, Option{Value: string(v.status), Label: v.key, Selected: v.status == selected})
	}
	return opts
}
