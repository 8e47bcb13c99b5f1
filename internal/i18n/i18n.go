// Package i18n resolves stable message codes into localized prose. Validation
// and notification codes stay language-neutral inside the domain; prose is
// produced only at the transport boundary.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.Ukrainian, // first tag is the fallback
	language.English,
}

var matcher = language.NewMatcher(supported)

// Translator resolves message codes for one configured default locale. The
// per-request Accept-Language value can override it.
type Translator struct {
	defaultLocale string
}

func NewTranslator(defaultLocale string) *Translator {
	return &Translator{defaultLocale: defaultLocale}
}

// Match normalizes an Accept-Language header (or bare locale) to a supported
// locale key, falling back to the translator's default.
func (t *Translator) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		acceptLanguage = t.defaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		tags = []language.Tag{language.Make(t.defaultLocale)}
	}
	_, idx, _ := matcher.Match(tags...)
	base, _ := supported[idx].Base()
	return base.String()
}

// Resolve renders the message for code in the given locale. Params fill
// {name} placeholders. Unknown codes render as the code itself so a missing
// catalog entry is visible rather than silent.
func (t *Translator) Resolve(locale, code string, params map[string]any) string {
	catalog, ok := catalogs[locale]
	if !ok {
		catalog = catalogs[t.Match(t.defaultLocale)]
	}
	tmpl, ok := catalog[code]
	if !ok {
		return code
	}
	msg := tmpl
	for name, value := range params {
		msg = strings.ReplaceAll(msg, "{"+name+"}", fmt.Sprintf("%v", value))
	}
	return msg
}
