package dto

import (
	"strings"

	"github.com/beout/beout-admin/internal/domain"
)

// CategoryRequest represents a category create or update
type CategoryRequest struct {
	NameFr        string `json:"name_fr" binding:"omitempty,max=100"`
	NameEn        string `json:"name_en" binding:"omitempty,max=100"`
	NameEs        string `json:"name_es" binding:"omitempty,max=100"`
	DescriptionFr string `json:"description_fr" binding:"omitempty,max=1000"`
	DescriptionEn string `json:"description_en" binding:"omitempty,max=1000"`
	DescriptionEs string `json:"description_es" binding:"omitempty,max=1000"`
	Icon          string `json:"icon" binding:"omitempty,max=100"`
	Color         string `json:"color" binding:"omitempty"`
}

// ToCategory converts the request to a domain category with legacy fields filled
func (r *CategoryRequest) ToCategory() *domain.Category {
	c := &domain.Category{
		NameFr:        strings.TrimSpace(r.NameFr),
		NameEn:        strings.TrimSpace(r.NameEn),
		NameEs:        strings.TrimSpace(r.NameEs),
		DescriptionFr: strings.TrimSpace(r.DescriptionFr),
		DescriptionEn: strings.TrimSpace(r.DescriptionEn),
		DescriptionEs: strings.TrimSpace(r.DescriptionEs),
		Icon:          r.Icon,
		Color:         r.Color,
	}
	c.FillLegacyFields()
	return c
}

// Validate checks that a name is given and the color is #RRGGBB
func (r *CategoryRequest) Validate() (bool, string) {
	if !r.ToCategory().HasName() {
		return false, "At least one category name is required"
	}
	if !domain.IsValidColor(r.Color) {
		return false, "Color must be a hex value like #FF5733"
	}
	return true, ""
}

// ListCategoriesQuery represents query parameters for the category list
type ListCategoriesQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search" binding:"omitempty,max=255"`
}
