// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/vorokhovskii-creator/felix-hub/internal/catalogapi"
)

var (
	// ErrInvalidID is returned for a non-numeric record id in a form.
	ErrInvalidID = errors.New("invalid id")
	// ErrSortOrderRange is returned for a sort order too large for an int.
	ErrSortOrderRange = errors.New("sort order out of range")
)

// CategoryForm holds the category modal fields as submitted.
type CategoryForm struct {
	ID        string
	Name      string
	SortOrder string
	IsActive  bool
}

// PartForm holds the part modal fields as submitted.
type PartForm struct {
	ID            string
	Name          string
	NameRU        string
	NameEN        string
	NameHE        string
	DescriptionRU string
	DescriptionEN string
	DescriptionHE string
	Category      string
	SortOrder     string
	IsActive      bool
}

// NewCategoryForm returns the create-mode form: empty fields, active checked.
func NewCategoryForm() CategoryForm {
	return CategoryForm{IsActive: true}
}

// NewPartForm returns the create-mode form: empty fields, active checked.
func NewPartForm() PartForm {
	return PartForm{IsActive: true}
}

// CategoryFormFrom populates an edit-mode form.
func CategoryFormFrom(c catalogapi.Category) CategoryForm {
	return CategoryForm{
		ID:        strconv.FormatInt(c.ID, 10),
		Name:      c.Name,
		SortOrder: strconv.Itoa(c.SortOrder),
		IsActive:  c.IsActive,
	}
}

// PartFormFrom populates an edit-mode form.
func PartFormFrom(p catalogapi.Part) PartForm {
	return PartForm{
		ID:            strconv.FormatInt(p.ID, 10),
		Name:          p.Name,
		NameRU:        p.NameRU,
		NameEN:        p.NameEN,
		NameHE:        p.NameHE,
		DescriptionRU: p.DescriptionRU,
		DescriptionEN: p.DescriptionEN,
		DescriptionHE: p.DescriptionHE,
		Category:      p.Category,
		SortOrder:     strconv.Itoa(p.SortOrder),
		IsActive:      p.IsActive,
	}
}

// ParseCategoryForm reads a submitted category form.
func ParseCategoryForm(v url.Values) CategoryForm {
	return CategoryForm{
		ID:        strings.TrimSpace(v.Get("id")),
		Name:      v.Get("name"),
		SortOrder: v.Get("sort_order"),
		IsActive:  checked(v, "is_active"),
	}
}

// ParsePartForm reads a submitted part form.
func ParsePartForm(v url.Values) PartForm {
	return PartForm{
		ID:            strings.TrimSpace(v.Get("id")),
		Name:          v.Get("name"),
		NameRU:        v.Get("name_ru"),
		NameEN:        v.Get("name_en"),
		NameHE:        v.Get("name_he"),
		DescriptionRU: v.Get("description_ru"),
		DescriptionEN: v.Get("description_en"),
		DescriptionHE: v.Get("description_he"),
		Category:      v.Get("category"),
		SortOrder:     v.Get("sort_order"),
		IsActive:      checked(v, "is_active"),
	}
}

func checked(v url.Values, key string) bool {
	switch v.Get(key) {
	case "on", "true", "1":
		return true
	}
	return false
}

// IsEdit reports whether the form updates an existing record.
func (f CategoryForm) IsEdit() bool { return f.ID != "" }

// Validate reports fields that cannot be sent as typed.
func (f CategoryForm) Validate() error {
	_, err := parseSortOrder(f.SortOrder)
	return err
}

// Validate reports fields that cannot be sent as typed.
func (f PartForm) Validate() error {
	_, err := parseSortOrder(f.SortOrder)
	return err
}

// IsEdit reports whether the form updates an existing record.
func (f PartForm) IsEdit() bool { return f.ID != "" }

// Input converts the form into an API payload.
func (f CategoryForm) Input() catalogapi.CategoryInput {
	return catalogapi.CategoryInput{
		Name:      f.Name,
		SortOrder: ParseSortOrder(f.SortOrder),
		IsActive:  f.IsActive,
	}
}

// Input converts the form into an API payload. Name falls back to the
// Russian variant when left empty.
func (f PartForm) Input() catalogapi.PartInput {
	name := f.Name
	if strings.TrimSpace(name) == "" {
		name = f.NameRU
	}
	return catalogapi.PartInput{
		Name:          name,
		NameRU:        f.NameRU,
		NameEN:        f.NameEN,
		NameHE:        f.NameHE,
		DescriptionRU: f.DescriptionRU,
		DescriptionEN: f.DescriptionEN,
		DescriptionHE: f.DescriptionHE,
		Category:      f.Category,
		SortOrder:     ParseSortOrder(f.SortOrder),
		IsActive:      f.IsActive,
	}
}

// ParseSortOrder reads the leading integer of s ("12", " -3", "7abc").
// Anything without one yields 0, as does a value out of int range; forms
// reject the latter in Validate.
func ParseSortOrder(s string) int {
	n, _ := parseSortOrder(s)
	return n
}

func parseSortOrder(s string) (int, error) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, nil
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, ErrSortOrderRange
	}
	return n, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
