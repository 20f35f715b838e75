package translation

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

var (
	ErrInvalidLanguage  = errors.New("invalid language code")
	ErrInvalidNamespace = errors.New("namespace must match ^[a-z0-9_-]+$")
)

var namespacePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// NormalizeLanguage validates a BCP-47 tag and returns its canonical form,
// e.g. "pt-br" becomes "pt-BR".
func NormalizeLanguage(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ErrInvalidLanguage
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", ErrInvalidLanguage
	}
	return tag.String(), nil
}

// ValidateNamespace checks the namespace naming rule
func ValidateNamespace(ns string) error {
	if !namespacePattern.MatchString(ns) {
		return ErrInvalidNamespace
	}
	return nil
}
