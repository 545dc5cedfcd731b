// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package i18n holds the fixed phrases renderers place around question text.
package i18n

import "github.com/pdiddy/examgen/pkg/types"

// Strings are the localized phrases for one language.
type Strings struct {
	Question       string
	Answer         string
	Chapter        string
	NotAvailable   string
	SeeAppendix    string
	SelectOne      string
	SelectMultiple string
	Source         string
}

var table = map[types.Language]Strings{
	types.Swedish: {
		Question:       "Fråga",
		Answer:         "Svar",
		Chapter:        "Kapitel",
		NotAvailable:   "Frågan finns inte på detta språk",
		SeeAppendix:    "Se bilaga",
		SelectOne:      "Välj ett alternativ.",
		SelectMultiple: "Välj ett eller flera alternativ.",
		Source:         "Källa",
	},
	types.English: {
		Question:       "Question",
		Answer:         "Answer",
		Chapter:        "Chapter",
		NotAvailable:   "The question is not available in this language",
		SeeAppendix:    "See appendix",
		SelectOne:      "Select one alternative.",
		SelectMultiple: "Select one or more alternatives.",
		Source:         "Source",
	},
}

// For returns the phrases for lang, defaulting to English.
func For(lang types.Language) Strings {
	if s, ok := table[lang]; ok {
		return s
	}
	return table[types.English]
}
