package domain

import "time"

// TranslationDocument is one namespace of UI strings for one language
type TranslationDocument struct {
	Language  string         `json:"language"`
	Namespace string         `json:"namespace"`
	Content   map[string]any `json:"translations"`
	UpdatedBy string         `json:"updated_by,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NamespaceInfo summarizes a stored namespace
type NamespaceInfo struct {
	Namespace string    `json:"namespace"`
	KeyCount  int       `json:"key_count"`
	UpdatedAt time.Time `json:"updated_at"`
}
