// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter selects ordered views of a question bank. Predicates
// combine with AND; selecting never copies or changes a question.
package filter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/examgen/pkg/types"
)

// Source is anything that yields questions in bank order.
type Source interface {
	Questions() []*types.Question
}

// Predicate decides whether a question is part of a selection.
type Predicate func(q *types.Question) bool

// Select returns the questions of src that satisfy every predicate, in
// bank order. With no predicates it returns the whole bank. An empty
// result is not an error.
func Select(src Source, preds ...Predicate) []*types.Question {
	out := []*types.Question{}
	for _, q := range src.Questions() {
		if matches(q, preds) {
			out = append(out, q)
		}
	}
	return out
}

func matches(q *types.Question, preds []Predicate) bool {
	for _, p := range preds {
		if !p(q) {
			return false
		}
	}
	return true
}

// BySubject keeps questions of one subject code (case-insensitive).
func BySubject(code string) Predicate {
	return func(q *types.Question) bool { return strings.EqualFold(q.Subject, code) }
}

// ByChapter keeps questions of one chapter.
func ByChapter(n int) Predicate {
	return func(q *types.Question) bool { return q.Chapter == n }
}

// ByTag keeps questions carrying tag.
func ByTag(tag string) Predicate {
	return func(q *types.Question) bool { return q.HasTag(tag) }
}

// ByType keeps questions of one type.
func ByType(t types.QuestionType) Predicate {
	return func(q *types.Question) bool { return q.Type == t }
}

// Criteria converts filter configuration into predicates. Unset fields
// add nothing.
func Criteria(cfg types.FilterConfig) []Predicate {
	var preds []Predicate
	if cfg.Subject != "" {
		preds = append(preds, BySubject(cfg.Subject))
	}
	if cfg.Chapter != nil {
		preds = append(preds, ByChapter(*cfg.Chapter))
	}
	if cfg.Tag != "" {
		preds = append(preds, ByTag(cfg.Tag))
	}
	if cfg.Type != "" {
		preds = append(preds, ByType(cfg.Type))
	}
	return preds
}

// Subjects returns the distinct subject codes in the bank, sorted.
func Subjects(src Source) []string {
	seen := make(map[string]bool)
	for _, q := range src.Questions() {
		seen[q.Subject] = true
	}
	return sortedKeys(seen)
}

// Chapters returns the distinct chapter numbers in the bank, ascending.
func Chapters(src Source) []int {
	seen := make(map[int]bool)
	var out []int
	for _, q := range src.Questions() {
		if !seen[q.Chapter] {
			seen[q.Chapter] = true
			out = append(out, q.Chapter)
		}
	}
	sort.Ints(out)
	return out
}

// Tags returns the distinct tags in the bank, sorted. Tags differing only
// in case are one tag, as ByTag matches them alike; the spelling seen first
// in bank order is kept.
func Tags(src Source) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range src.Questions() {
		for _, t := range q.Tags {
			key := strings.ToLower(t)
			if !seen[key] {
				seen[key] = true
				out = append(out, t)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i]) < strings.ToLower(out[j]) })
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Matrix entry kinds.
const (
	KindSubject = "subject"
	KindTag     = "tag"
	KindChapter = "chapter"
	KindAll     = "all"
)

// AllValue is the value of the single KindAll entry.
const AllValue = "ALL"

// MatrixEntry is one build of a CI matrix: a document restricted to one
// subject, tag or chapter, or the whole bank.
type MatrixEntry struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// Matrix lists one entry per subject, tag and chapter present in the bank,
// in that order, followed by the complete build.
func Matrix(src Source) []MatrixEntry {
	var out []MatrixEntry
	for _, s := range Subjects(src) {
		out = append(out, MatrixEntry{Type: KindSubject, Value: s})
	}
	for _, t := range Tags(src) {
		out = append(out, MatrixEntry{Type: KindTag, Value: t})
	}
	for _, c := range Chapters(src) {
		out = append(out, MatrixEntry{Type: KindChapter, Value: strconv.Itoa(c)})
	}
	return append(out, MatrixEntry{Type: KindAll, Value: AllValue})
}

// FilterConfig converts a matrix entry back into filter configuration.
func (e MatrixEntry) FilterConfig() (types.FilterConfig, error) {
	var cfg types.FilterConfig
	switch e.Type {
	case KindSubject:
		cfg.Subject = e.Value
	case KindTag:
		cfg.Tag = e.Value
	case KindChapter:
		n, err := strconv.Atoi(e.Value)
		if err != nil {
			return cfg, err
		}
		cfg.Chapter = &n
	}
	return cfg, nil
}
