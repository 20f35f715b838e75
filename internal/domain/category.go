package domain

import (
	"regexp"
	"time"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Category is an event category with French, English and Spanish labels
type Category struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	NameFr        string    `json:"name_fr"`
	NameEn        string    `json:"name_en"`
	NameEs        string    `json:"name_es"`
	Description   string    `json:"description"`
	DescriptionFr string    `json:"description_fr"`
	DescriptionEn string    `json:"description_en"`
	DescriptionEs string    `json:"description_es"`
	Icon          string    `json:"icon"`
	Color         string    `json:"color"`
	EventCount    int64     `json:"event_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// FillLegacyFields sets the single-language name and description from the
// localized ones, preferring fr, then en, then es
func (c *Category) FillLegacyFields() {
	if n := firstNonEmpty(c.NameFr, c.NameEn, c.NameEs); n != "" {
		c.Name = n
	}
	if d := firstNonEmpty(c.DescriptionFr, c.DescriptionEn, c.DescriptionEs); d != "" {
		c.Description = d
	}
}

// HasName reports whether at least one localized name is set
func (c *Category) HasName() bool {
	return firstNonEmpty(c.NameFr, c.NameEn, c.NameEs) != ""
}

// IsValidColor reports whether color is empty or a #RRGGBB value
func IsValidColor(color string) bool {
	return color == "" || colorPattern.MatchString(color)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
