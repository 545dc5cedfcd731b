// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble orders rendered questions into complete outputs: the
// LaTeX document built from a template, and the Moodle quiz. Questions
// are grouped by subject in catalog order, then by chapter, keeping bank
// order inside a chapter. Output depends only on its inputs.
package assemble

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/examgen/internal/escape"
	"github.com/pdiddy/examgen/internal/i18n"
	"github.com/pdiddy/examgen/internal/moodle"
	"github.com/pdiddy/examgen/internal/render"
	"github.com/pdiddy/examgen/internal/subjects"
	"github.com/pdiddy/examgen/pkg/types"
)

// Options configure one assembled body.
type Options struct {
	// Catalog orders and titles subjects. Nil uses the built-in catalog.
	Catalog *subjects.Catalog

	// Registry renders questions. Nil uses render.Default().
	Registry *render.Registry

	// Render is passed to every renderer; Number is assigned here.
	Render render.Options
}

func (o Options) catalog() *subjects.Catalog {
	if o.Catalog == nil {
		return subjects.Default()
	}
	return o.Catalog
}

func (o Options) registry() *render.Registry {
	if o.Registry == nil {
		return render.Default()
	}
	return o.Registry
}

// Failure is a question left out of an output.
type Failure struct {
	ID string

	// Section names the document placeholder the failure happened in, if
	// any.
	Section string

	Err error
}

func (f Failure) Error() string {
	if f.Section == "" {
		return f.Err.Error()
	}
	return fmt.Sprintf("%s: %v", f.Section, f.Err)
}

// Unwrap exposes the renderer error.
func (f Failure) Unwrap() error { return f.Err }

// Body is one assembled LaTeX body.
type Body struct {
	Text string

	// Rendered lists the ids of rendered questions in output order.
	Rendered []string

	Failures []Failure
}

// Order returns the questions sorted by subject catalog position, then
// chapter. Questions that tie keep their relative order.
func Order(qs []*types.Question, catalog *subjects.Catalog) []*types.Question {
	out := append([]*types.Question(nil), qs...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if oa, ob := catalog.Order(a.Subject), catalog.Order(b.Subject); oa != ob {
			return oa < ob
		}
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		return a.Chapter < b.Chapter
	})
	return out
}

// LaTeX renders the questions as a document body. A \section opens each
// subject and a \subsection each chapter; a heading is only written for
// groups that render at least one question. Questions are numbered from 1
// in output order. Questions that fail to render are left out and listed
// in the result.
func LaTeX(qs []*types.Question, opts Options) Body {
	catalog := opts.catalog()
	reg := opts.registry()
	s := i18n.For(opts.Render.Languages.Primary)

	var (
		b             strings.Builder
		body          Body
		subject       string
		chapter       int
		opened        bool
		chapterOpened bool
	)
	for _, q := range Order(qs, catalog) {
		ro := opts.Render
		ro.Number = len(body.Rendered) + 1
		fragment, err := reg.Document(q, ro)
		if err != nil {
			body.Failures = append(body.Failures, Failure{ID: q.ID, Err: err})
			continue
		}

		if !opened || q.Subject != subject {
			fmt.Fprintf(&b, "\\section{%s}\n\n", escape.LaTeX(catalog.Title(q.Subject)))
			subject, opened, chapterOpened = q.Subject, true, false
		}
		if !chapterOpened || q.Chapter != chapter {
			fmt.Fprintf(&b, "\\subsection{%s %d}\n\n", escape.LaTeX(s.Chapter), q.Chapter)
			chapter, chapterOpened = q.Chapter, true
		}
		b.WriteString(fragment)
		b.WriteString("\n")
		body.Rendered = append(body.Rendered, q.ID)
	}
	body.Text = b.String()
	return body
}

// QuizResult is an assembled Moodle quiz.
type QuizResult struct {
	Quiz     moodle.Quiz
	Rendered []string
	Failures []Failure
}

// Quiz renders the questions as a Moodle quiz. A category entry
// "<subject title>/<Chapter> N" precedes the questions of each chapter.
func Quiz(qs []*types.Question, opts Options) QuizResult {
	catalog := opts.catalog()
	reg := opts.registry()
	s := i18n.For(opts.Render.Languages.Primary)

	var (
		res     QuizResult
		subject string
		chapter int
		opened  bool
	)
	for _, q := range Order(qs, catalog) {
		ro := opts.Render
		ro.Number = len(res.Rendered) + 1
		mq, err := reg.Quiz(q, ro)
		if err != nil {
			res.Failures = append(res.Failures, Failure{ID: q.ID, Err: err})
			continue
		}

		if !opened || q.Subject != subject || q.Chapter != chapter {
			res.Quiz.Questions = append(res.Quiz.Questions,
				moodle.Category(catalog.Title(q.Subject), fmt.Sprintf("%s %d", s.Chapter, q.Chapter)))
			subject, chapter, opened = q.Subject, q.Chapter, true
		}
		res.Quiz.Questions = append(res.Quiz.Questions, mq)
		res.Rendered = append(res.Rendered, q.ID)
	}
	return res
}
