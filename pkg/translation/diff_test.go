package translation

import (
	"errors"
	"reflect"
	"testing"
)

func TestDiff(t *testing.T) {
	reference := map[string]any{
		"title": "Accueil",
		"nav":   map[string]any{"home": "Accueil", "about": "À propos"},
		"cta":   "Réserver",
	}
	target := map[string]any{
		"title": "Home",
		"nav":   map[string]any{"home": "Home", "contact": "Contact"},
		"cta":   "  ",
	}

	r := Diff(reference, target)

	if !reflect.DeepEqual(r.MissingKeys, []string{"nav.about"}) {
		t.Errorf("MissingKeys = %v", r.MissingKeys)
	}
	if !reflect.DeepEqual(r.ExtraKeys, []string{"nav.contact"}) {
		t.Errorf("ExtraKeys = %v", r.ExtraKeys)
	}
	if !reflect.DeepEqual(r.EmptyKeys, []string{"cta"}) {
		t.Errorf("EmptyKeys = %v", r.EmptyKeys)
	}
	if r.Valid {
		t.Error("expected report to be invalid")
	}
	// 4 reference keys, 1 missing, 1 empty
	if r.Completion != 50 {
		t.Errorf("Completion = %v, want 50", r.Completion)
	}
	if r.ReferenceKeys != 4 || r.TotalKeys != 4 {
		t.Errorf("key counts = %d/%d", r.TotalKeys, r.ReferenceKeys)
	}
}

func TestDiff_Identical(t *testing.T) {
	doc := map[string]any{"a": "1", "b": map[string]any{"c": "2"}}
	r := Diff(doc, doc)
	if !r.Valid || r.Completion != 100 {
		t.Errorf("expected valid complete report, got %+v", r)
	}

	empty := Diff(map[string]any{}, map[string]any{})
	if empty.Completion != 100 {
		t.Errorf("empty reference completion = %v, want 100", empty.Completion)
	}
}

func TestMerge(t *testing.T) {
	base := map[string]any{
		"title": "Old",
		"nav":   map[string]any{"home": "Home", "about": "About"},
	}
	overlay := map[string]any{
		"title": "New",
		"nav":   map[string]any{"about": "About us", "faq": "FAQ"},
		"extra": "x",
	}

	got := Merge(base, overlay)
	want := map[string]any{
		"title": "New",
		"nav":   map[string]any{"home": "Home", "about": "About us", "faq": "FAQ"},
		"extra": "x",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge() = %v, want %v", got, want)
	}

	// Inputs are not mutated
	if base["nav"].(map[string]any)["about"] != "About" {
		t.Error("Merge mutated base")
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"fr", "fr", false},
		{"en", "en", false},
		{"pt-br", "pt-BR", false},
		{" es ", "es", false},
		{"", "", true},
		{"not a language", "", true},
		{"../etc", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeLanguage(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeLanguage(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidLanguage) {
			t.Errorf("NormalizeLanguage(%q) error = %v, want ErrInvalidLanguage", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateNamespace(t *testing.T) {
	valid := []string{"common", "auth", "event_details", "home-page", "v2"}
	invalid := []string{"", "Common", "has space", "../secret", "a.b"}

	for _, ns := range valid {
		if err := ValidateNamespace(ns); err != nil {
			t.Errorf("ValidateNamespace(%q) = %v, want nil", ns, err)
		}
	}
	for _, ns := range invalid {
		if err := ValidateNamespace(ns); err == nil {
			t.Errorf("ValidateNamespace(%q) = nil, want error", ns)
		}
	}
}
