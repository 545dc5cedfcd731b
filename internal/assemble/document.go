// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	_ "embed"
	"strings"

	"github.com/pdiddy/examgen/internal/appendix"
	"github.com/pdiddy/examgen/internal/escape"
	"github.com/pdiddy/examgen/internal/refs"
	"github.com/pdiddy/examgen/internal/render"
	"github.com/pdiddy/examgen/pkg/types"
)

//go:embed templates/body.tex
var defaultTemplate string

// DefaultTemplate returns the built-in document template.
func DefaultTemplate() string { return defaultTemplate }

// Template placeholders.
const (
	PlaceholderTitle      = "<<<TEMPLATEVAR_TITLE>>>"
	PlaceholderAppendixes = "% <<<TEMPLATEVAR_APPENDIXES>>>"
	PlaceholderReferences = "% <<<TEMPLATEVAR_BIBLIOGRAPHY>>>"
)

// Section is a body placeholder and the rendering that fills it.
type Section struct {
	Placeholder string
	Languages   types.LanguageSelection
	WithAnswers bool
}

// Sections lists every body placeholder a template may contain, in the
// order they are rendered.
var Sections = []Section{
	{"% <<<TEMPLATEVAR_SWEDISH_QUESTIONS_ONLY>>>", types.Single(types.Swedish), false},
	{"% <<<TEMPLATEVAR_SWEDISH_QUESTIONS_AND_ANSWERS>>>", types.Single(types.Swedish), true},
	{"% <<<TEMPLATEVAR_ENGLISH_QUESTIONS_ONLY>>>", types.Single(types.English), false},
	{"% <<<TEMPLATEVAR_ENGLISH_QUESTIONS_AND_ANSWERS>>>", types.Single(types.English), true},
	{"% <<<TEMPLATEVAR_BILINGUAL_QUESTIONS_ONLY>>>", types.Bilingual(), false},
	{"% <<<TEMPLATEVAR_BILINGUAL_QUESTIONS_AND_ANSWERS>>>", types.Bilingual(), true},
}

// Name returns the placeholder's variable name, e.g. "ENGLISH_QUESTIONS_ONLY".
func (s Section) Name() string {
	name := strings.TrimPrefix(s.Placeholder, "% <<<TEMPLATEVAR_")
	return strings.TrimSuffix(name, ">>>")
}

// DocumentOptions configure a complete document. The embedded Render
// options are replaced per section.
type DocumentOptions struct {
	Options

	Template string
	Title    string
	Fallback types.FallbackPolicy

	// Appendixes resolves appendix references; nil leaves the appendix
	// placeholder empty.
	Appendixes *appendix.Set

	// AppendixInclude is the \include path prefix of appendix files.
	AppendixInclude string

	// References resolves citation keys; nil treats every key as missing.
	References *refs.Library
}

// Document is a filled template.
type Document struct {
	Text string

	// Rendered lists each question rendered in at least one section, in
	// first-rendered order.
	Rendered []string

	Failures []Failure

	// MissingAppendixes and MissingReferences list referenced files and
	// citation keys that could not be resolved.
	MissingAppendixes []string
	MissingReferences []string
}

// BuildDocument fills every placeholder present in the template (the
// built-in one when Template is empty) from the questions.
func BuildDocument(qs []*types.Question, opts DocumentOptions) Document {
	tmpl := opts.Template
	if tmpl == "" {
		tmpl = defaultTemplate
	}

	var doc Document
	seen := make(map[string]bool)
	var rendered []*types.Question
	byID := make(map[string]*types.Question, len(qs))
	for _, q := range qs {
		byID[q.ID] = q
	}

	out := strings.ReplaceAll(tmpl, PlaceholderTitle, escape.LaTeX(opts.Title))
	for _, sec := range Sections {
		if !strings.Contains(out, sec.Placeholder) {
			continue
		}
		bo := opts.Options
		bo.Render = render.Options{
			Languages:   sec.Languages,
			Fallback:    opts.Fallback,
			WithAnswers: sec.WithAnswers,
		}
		body := LaTeX(qs, bo)
		for _, f := range body.Failures {
			f.Section = sec.Name()
			doc.Failures = append(doc.Failures, f)
		}
		for _, id := range body.Rendered {
			if !seen[id] {
				seen[id] = true
				doc.Rendered = append(doc.Rendered, id)
				rendered = append(rendered, byID[id])
			}
		}
		out = strings.ReplaceAll(out, sec.Placeholder, strings.TrimSpace(body.Text))
	}

	if strings.Contains(out, PlaceholderReferences) {
		keys := refs.CitedKeys(rendered)
		lib := opts.References
		if lib == nil {
			lib = &refs.Library{}
		}
		doc.MissingReferences = lib.Missing(keys)
		out = strings.ReplaceAll(out, PlaceholderReferences, strings.TrimSpace(lib.Bibliography(keys)))
	}

	if strings.Contains(out, PlaceholderAppendixes) {
		var required []string
		for _, q := range rendered {
			if q.Appendix != "" {
				required = append(required, q.Appendix)
			}
		}
		set := opts.Appendixes
		if set == nil {
			set = &appendix.Set{}
		}
		section, missing := set.Section(required, opts.AppendixInclude)
		doc.MissingAppendixes = missing
		out = strings.ReplaceAll(out, PlaceholderAppendixes, strings.TrimSpace(section))
	}

	doc.Text = out
	return doc
}
