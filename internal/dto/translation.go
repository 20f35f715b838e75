package dto

import "github.com/beout/beout-admin/pkg/translation"

// SaveTranslationsRequest represents a replace or create of a namespace
type SaveTranslationsRequest struct {
	Translations map[string]any `json:"translations" binding:"required"`
}

// UploadTranslationsRequest is the parsed multipart upload
type UploadTranslationsRequest struct {
	Language  string
	Namespace string
	Merge     bool
	Content   map[string]any
}

// LanguageInfo describes a language available in the console
type LanguageInfo struct {
	Code        string `json:"code"`
	IsReference bool   `json:"is_reference"`
	Namespaces  int    `json:"namespaces"`
}

// TranslationStatsResponse summarizes every language against the reference
type TranslationStatsResponse struct {
	ReferenceLanguage string          `json:"reference_language"`
	Languages         []LanguageStats `json:"languages"`
}

// LanguageStats summarizes one language
type LanguageStats struct {
	Language    string  `json:"language"`
	Namespaces  int     `json:"namespaces"`
	TotalKeys   int     `json:"total_keys"`
	MissingKeys int     `json:"missing_keys"`
	EmptyKeys   int     `json:"empty_keys"`
	Completion  float64 `json:"completion"`
}

// ValidateTranslationsResponse is the diff of a namespace against the reference
type ValidateTranslationsResponse struct {
	Language          string `json:"language"`
	Namespace         string `json:"namespace"`
	ReferenceLanguage string `json:"reference_language"`
	translation.Report
}
