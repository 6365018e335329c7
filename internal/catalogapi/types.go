// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalogapi

// Category is a named grouping of parts as returned by the catalog API.
// Counts are computed by the server.
type Category struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	IsActive         bool   `json:"is_active"`
	SortOrder        int    `json:"sort_order"`
	PartsCount       int    `json:"parts_count"`
	ActivePartsCount int    `json:"active_parts_count"`
	CreatedAt        string `json:"created_at,omitempty"`
	UpdatedAt        string `json:"updated_at,omitempty"`
}

// Part is a catalog item. Category references the category by name.
type Part struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	NameRU        string `json:"name_ru,omitempty"`
	NameEN        string `json:"name_en,omitempty"`
	NameHE        string `json:"name_he,omitempty"`
	DescriptionRU string `json:"description_ru,omitempty"`
	DescriptionEN string `json:"description_en,omitempty"`
	DescriptionHE string `json:"description_he,omitempty"`
	Category      string `json:"category"`
	IsActive      bool   `json:"is_active"`
	SortOrder     int    `json:"sort_order"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// LocalizedName returns the name variant for lang, falling back to Name.
func (p Part) LocalizedName(lang string) string {
	var v string
	switch lang {
	case "ru":
		v = p.NameRU
	case "en":
		v = p.NameEN
	case "he":
		v = p.NameHE
	}
	if v == "" {
		return p.Name
	}
	return v
}

// LocalizedDescription returns the description variant for lang.
func (p Part) LocalizedDescription(lang string) string {
	switch lang {
	case "en":
		return p.DescriptionEN
	case "he":
		return p.DescriptionHE
	default:
		return p.DescriptionRU
	}
}

// CategoryInput is the create/update payload for a category.
type CategoryInput struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

// PartInput is the create/update payload for a part.
type PartInput struct {
	Name          string `json:"name"`
	NameRU        string `json:"name_ru,omitempty"`
	NameEN        string `json:"name_en,omitempty"`
	NameHE        string `json:"name_he,omitempty"`
	DescriptionRU string `json:"description_ru,omitempty"`
	DescriptionEN string `json:"description_en,omitempty"`
	DescriptionHE string `json:"description_he,omitempty"`
	Category      string `json:"category"`
	SortOrder     int    `json:"sort_order"`
	IsActive      bool   `json:"is_active"`
}

// ImportResult is the response of the default catalog import.
type ImportResult struct {
	Message string `json:"message"`
}
