package biztime

import (
	"golang.org/x/text/language"
)

// Style names one of the two display renderings.
type Style string

const (
	StyleUTC   Style = "utc"
	StyleLocal Style = "local"
)

var styleMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.French,
})

// PreferredStyle picks the rendering for an Accept-Language header value.
// French speakers get the local rendering, everyone else UTC.
func PreferredStyle(acceptLanguage string) Style {
	if acceptLanguage == "" {
		return StyleUTC
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return StyleUTC
	}
	_, idx, _ := styleMatcher.Match(tags...)
	if idx == 1 {
		return StyleLocal
	}
	return StyleUTC
}

// Display holds both renderings of an instant.
type Display struct {
	UTC       string `json:"utc"`
	Local     string `json:"local"`
	Preferred string `json:"preferred"`
}

// Display renders i in both styles, marking style as preferred.
func (n *Normalizer) Display(i Instant, style Style) *Display {
	if i.IsZero() {
		return nil
	}
	d := &Display{UTC: n.FormatUTC(i), Local: n.FormatLocal(i)}
	if style == StyleLocal {
		d.Preferred = d.Local
	} else {
		d.Preferred = d.UTC
	}
	return d
}
