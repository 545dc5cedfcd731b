// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns single questions into LaTeX fragments and Moodle
// quiz questions. Each question type has its own Renderer; a Registry maps
// types to renderers and resolves which language content a question is
// shown in.
package render

import (
	"github.com/pdiddy/examgen/internal/moodle"
	"github.com/pdiddy/examgen/pkg/types"
)

// Options control one rendering.
type Options struct {
	// Languages selects one language or both side by side.
	Languages types.LanguageSelection

	// Fallback decides what happens when a selected language is missing.
	Fallback types.FallbackPolicy

	// WithAnswers includes answers instead of leaving answer space.
	WithAnswers bool

	// Number is the question's position in the document; 0 omits it.
	Number int
}

// Localized is the content shown for one requested language.
type Localized struct {
	// Lang is the requested language; labels and notes use it.
	Lang types.Language

	// Source is the language Content was taken from.
	Source types.Language

	Content types.Content

	// Missing is set for a side-by-side column with no content at all.
	Missing bool
}

// Fallback reports whether the content comes from the other language.
func (l Localized) Fallback() bool { return !l.Missing && l.Source != l.Lang }

// Renderer produces both output forms for one question type. views holds
// one entry per requested language, primary first.
type Renderer interface {
	Type() types.QuestionType
	Document(q *types.Question, views []Localized, opts Options) string
	Quiz(q *types.Question, views []Localized, opts Options) moodle.Question
}

// Views resolves the content shown for each requested language.
//
// A single-language selection uses the question's content in that language.
// When it is absent, FallbackToOther substitutes the other language and
// SkipIfMissing fails with MissingLanguageError. Side-by-side selections
// never skip: a missing column is filled from the other language under
// FallbackToOther, and is marked Missing otherwise.
func Views(q *types.Question, sel types.LanguageSelection, policy types.FallbackPolicy) ([]Localized, error) {
	primary := sel.Primary
	if !primary.Valid() {
		primary = types.Swedish
	}
	langs := []types.Language{primary}
	if sel.SideBySide {
		langs = append(langs, primary.Other())
	}

	views := make([]Localized, 0, len(langs))
	for _, lang := range langs {
		if c, ok := q.Content[lang]; ok {
			views = append(views, Localized{Lang: lang, Source: lang, Content: c})
			continue
		}
		if other, ok := q.Content[lang.Other()]; ok && policy == types.FallbackToOther {
			views = append(views, Localized{Lang: lang, Source: lang.Other(), Content: other})
			continue
		}
		if !sel.SideBySide {
			return nil, &MissingLanguageError{ID: q.ID, Language: lang}
		}
		views = append(views, Localized{Lang: lang, Source: lang, Missing: true})
	}
	return views, nil
}
