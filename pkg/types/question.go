// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the examgen pipeline:
// the question model, its classification enums, and the configuration
// passed from the CLI into the pipeline.
package types

import (
	"sort"
	"strings"
)

// QuestionType identifies the kind of question and selects its renderer.
type QuestionType string

const (
	TypeEssay         QuestionType = "essay"
	TypeShortAnswer   QuestionType = "sa"
	TypeSingleChoice  QuestionType = "sc"
	TypeMultiChoice   QuestionType = "mc"
	TypeMultiQuestion QuestionType = "mq"
	TypeDropDown      QuestionType = "dq"
	TypeNumber        QuestionType = "nq"
)

// typeNames maps every known type code to its display name. Bank cells may
// use either form.
var typeNames = map[QuestionType]string{
	TypeEssay:         "Essay",
	TypeShortAnswer:   "Short Answer",
	TypeSingleChoice:  "Single Choice",
	TypeMultiChoice:   "Multi Choice",
	TypeMultiQuestion: "Multi Question",
	TypeDropDown:      "Drop Down",
	TypeNumber:        "Number",
}

// Name returns the display name of the type, or the raw code when unknown.
func (t QuestionType) Name() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return string(t)
}

// Known reports whether t is one of the question types the model defines.
func (t QuestionType) Known() bool {
	_, ok := typeNames[t]
	return ok
}

// IsChoice reports whether the type answers by picking from options.
func (t QuestionType) IsChoice() bool {
	return t == TypeSingleChoice || t == TypeMultiChoice || t == TypeDropDown
}

// ParseQuestionType resolves a code ("sa") or display name ("Short Answer"),
// ignoring case and surrounding space. The boolean is false for unknown
// values.
func ParseQuestionType(s string) (QuestionType, bool) {
	s = strings.TrimSpace(s)
	for code, name := range typeNames {
		if strings.EqualFold(s, string(code)) || strings.EqualFold(s, name) {
			return code, true
		}
	}
	return "", false
}

// KnownTypes returns every defined type code in sorted order.
func KnownTypes() []QuestionType {
	out := make([]QuestionType, 0, len(typeNames))
	for t := range typeNames {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Language is a content language code.
type Language string

const (
	Swedish Language = "sv"
	English Language = "en"
)

// Languages lists the supported content languages in document order.
var Languages = []Language{Swedish, English}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == Swedish || l == English
}

// Other returns the supported language that is not l.
func (l Language) Other() Language {
	if l == Swedish {
		return English
	}
	return Swedish
}

// Option is one answer alternative of a choice question.
type Option struct {
	Text    string `json:"text" yaml:"text"`
	Correct bool   `json:"correct,omitempty" yaml:"correct,omitempty"`
}

// Content is the language-specific payload of a question.
type Content struct {
	// Question is the question text (stem).
	Question string `json:"question" yaml:"question"`

	// Answer is the expected answer for short-answer, number and essay
	// questions. For choice questions it may name the correct options.
	Answer string `json:"answer,omitempty" yaml:"answer,omitempty"`

	// Alternatives are alternative phrasings of the stem (multi-question type).
	Alternatives []string `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`

	// Options are the answer alternatives, with correctness flags.
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// CorrectOptions returns the options flagged correct, in order.
func (c Content) CorrectOptions() []Option {
	var out []Option
	for _, o := range c.Options {
		if o.Correct {
			out = append(out, o)
		}
	}
	return out
}

// AcceptedAnswers returns the literal answers accepted for free-text
// questions: the answer followed by any answer alternatives, without
// duplicates.
func (c Content) AcceptedAnswers() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	add(c.Answer)
	for _, o := range c.Options {
		add(o.Text)
	}
	return out
}

// Question is one validated question of the bank. Questions are built once
// by the bank parser and must not be modified afterwards.
type Question struct {
	// ID is unique within a bank and stable across runs.
	ID string `json:"id" yaml:"id"`

	// Subject is a subject code from the subject catalog (e.g. "HIS").
	Subject string `json:"subject" yaml:"subject"`

	// Chapter groups questions within a subject.
	Chapter int `json:"chapter" yaml:"chapter"`

	// Type selects the renderer.
	Type QuestionType `json:"type" yaml:"type"`

	// Content holds the text per language; at least one entry is present.
	Content map[Language]Content `json:"content" yaml:"content"`

	// Tags are free-form labels used for filtering and CI matrices.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Reference is an optional bibliography key.
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty"`

	// Appendix names an appendix file (e.g. "ascii_table.tex") the question
	// refers to.
	Appendix string `json:"appendix,omitempty" yaml:"appendix,omitempty"`

	// Figure is an optional image path embedded below the stem.
	Figure string `json:"figure,omitempty" yaml:"figure,omitempty"`
}

// Has reports whether the question carries content in lang.
func (q *Question) Has(lang Language) bool {
	_, ok := q.Content[lang]
	return ok
}

// HasTag reports whether the question is labelled with tag (case-insensitive).
func (q *Question) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
