package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchAcceptLanguage(t *testing.T) {
	tr := NewTranslator("uk")

	assert.Equal(t, "en", tr.Match("en-US,en;q=0.9"))
	assert.Equal(t, "uk", tr.Match("uk-UA"))
	assert.Equal(t, "uk", tr.Match(""))
	// Unsupported languages fall back to the first supported tag.
	assert.Equal(t, "uk", tr.Match("de-DE"))
}

func TestResolveWithParams(t *testing.T) {
	tr := NewTranslator("uk")

	assert.Equal(t, "Must be at least 2 characters",
		tr.Resolve("en", CodeMinLength, map[string]any{"min": 2}))
	assert.Equal(t, "Мінімальна довжина: 2 символів",
		tr.Resolve("uk", CodeMinLength, map[string]any{"min": 2}))
}

func TestResolveUnknownCodeEchoesCode(t *testing.T) {
	tr := NewTranslator("en")
	assert.Equal(t, "no.such.code", tr.Resolve("en", "no.such.code", nil))
}

func TestResolveUnknownLocaleFallsBack(t *testing.T) {
	tr := NewTranslator("uk")
	assert.Equal(t, "Паролі не співпадають", tr.Resolve("fr", CodePasswordsNotMatch, nil))
}
