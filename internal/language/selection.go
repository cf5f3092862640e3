package language

import "strings"

// selectionTokens is the closed set of onboarding replies that choose a
// language: the numeric menu codes plus the language names in any supported
// script.
var selectionTokens = map[string]Language{
	"1":       English,
	"english": English,
	"eng":     English,
	"2":       Hindi,
	"hindi":   Hindi,
	"हिंदी":   Hindi,
	"hi":      Hindi,
	"3":       Odia,
	"odia":    Odia,
	"odiya":   Odia,
	"ଓଡ଼ିଆ":   Odia,
	"or":      Odia,
}

// ParseSelection reports whether text is a language-selection token and which
// language it selects.
func ParseSelection(text string) (Language, bool) {
	lang, ok := selectionTokens[strings.ToLower(strings.TrimSpace(text))]
	return lang, ok
}
