// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate runs the examgen pipeline: load the bank, select
// questions, assemble the output and write it atomically. Progress lines
// and a summary go to the caller's writer; the returned Report carries
// every problem found.
package generate

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pdiddy/examgen/internal/appendix"
	"github.com/pdiddy/examgen/internal/assemble"
	"github.com/pdiddy/examgen/internal/bank"
	"github.com/pdiddy/examgen/internal/filter"
	"github.com/pdiddy/examgen/internal/moodle"
	"github.com/pdiddy/examgen/internal/refs"
	"github.com/pdiddy/examgen/internal/render"
	"github.com/pdiddy/examgen/internal/subjects"
	"github.com/pdiddy/examgen/pkg/types"
)

// Report summarizes one run.
type Report struct {
	// Rows is the number of data rows in the bank.
	Rows int
	// Loaded is the number of valid questions.
	Loaded int
	// Selected is the number of questions passing the filter.
	Selected int
	// Rendered is the number of selected questions in the output.
	Rendered int

	RowErrors []*bank.RowError
	Warnings  []*bank.RowError

	// Skipped lists questions left out for a missing language, once per
	// document section they were left out of.
	Skipped []assemble.Failure
	// RenderErrors lists questions whose type has no renderer, once per
	// section.
	RenderErrors []assemble.Failure

	MissingReferences []string
	MissingAppendixes []string

	// Output is the written file, if any.
	Output string
}

// HasFailures reports whether rows were rejected or questions failed to
// render. Skipped questions and warnings are not failures.
func (r *Report) HasFailures() bool {
	return len(r.RowErrors) > 0 || len(r.RenderErrors) > 0
}

// SkippedQuestions counts the distinct questions in Skipped.
func (r *Report) SkippedQuestions() int { return distinctIDs(r.Skipped) }

// FailedQuestions counts the distinct questions in RenderErrors.
func (r *Report) FailedQuestions() int { return distinctIDs(r.RenderErrors) }

func distinctIDs(failures []assemble.Failure) int {
	seen := make(map[string]bool, len(failures))
	for _, f := range failures {
		seen[f.ID] = true
	}
	return len(seen)
}

func (r *Report) addFailures(failures []assemble.Failure) {
	for _, f := range failures {
		if errors.Is(f.Err, render.ErrUnknownRenderer) {
			r.RenderErrors = append(r.RenderErrors, f)
			continue
		}
		r.Skipped = append(r.Skipped, f)
	}
}

// Print writes one line per problem followed by the summary line.
func (r *Report) Print(w io.Writer) {
	for _, e := range r.RowErrors {
		fmt.Fprintf(w, "rejected: %v\n", e)
	}
	for _, e := range r.Warnings {
		fmt.Fprintf(w, "warning: %v\n", e)
	}
	for _, f := range r.Skipped {
		fmt.Fprintf(w, "skipped: %v\n", f)
	}
	for _, f := range r.RenderErrors {
		fmt.Fprintf(w, "failed:  %v\n", f)
	}
	for _, k := range r.MissingReferences {
		fmt.Fprintf(w, "warning: unknown citation key %q\n", k)
	}
	for _, a := range r.MissingAppendixes {
		fmt.Fprintf(w, "warning: appendix %s not found\n", a)
	}
	fmt.Fprintf(w, "\nSummary: %d rows, %d loaded, %d rejected, %d selected, %d rendered, %d skipped, %d failed\n",
		r.Rows, r.Loaded, len(r.RowErrors), r.Selected, r.Rendered, r.SkippedQuestions(), r.FailedQuestions())
	if r.Output != "" {
		fmt.Fprintf(w, "Output written to: %s\n", r.Output)
	}
}

// Selection is a loaded bank and the questions chosen from it.
type Selection struct {
	Catalog  *subjects.Catalog
	Registry *render.Registry
	Bank     *bank.Bank
	Selected []*types.Question
}

// Load reads the catalog and bank named by cfg and applies the filter.
// Every error it returns is fatal and happens before any output.
func Load(cfg types.GenerateConfig) (*Selection, error) {
	catalog, err := subjects.Load(cfg.SubjectsFile)
	if err != nil {
		return nil, err
	}
	if s := cfg.Filter.Subject; s != "" {
		if _, ok := catalog.Lookup(s); !ok {
			return nil, fmt.Errorf("unknown subject %q", s)
		}
	}
	if t := cfg.Filter.Type; t != "" && !t.Known() {
		return nil, fmt.Errorf("unknown question type %q", t)
	}

	reg := render.Default()
	opts := bank.Options{Catalog: catalog, Supports: reg.Supports}
	if cfg.AcceptAllTypes {
		opts.Supports = nil
	}
	b, err := bank.LoadFile(cfg.Bank, opts)
	if err != nil {
		return nil, err
	}

	selected := filter.Select(b, filter.Criteria(cfg.Filter)...)
	slog.Debug("selected questions", "count", len(selected), "subject", cfg.Filter.Subject, "tag", cfg.Filter.Tag, "type", cfg.Filter.Type)
	return &Selection{Catalog: catalog, Registry: reg, Bank: b, Selected: selected}, nil
}

func (s *Selection) report() *Report {
	return &Report{
		Rows:      s.Bank.Rows(),
		Loaded:    s.Bank.Len(),
		Selected:  len(s.Selected),
		RowErrors: s.Bank.Errors(),
		Warnings:  s.Bank.Warnings(),
	}
}

func (s *Selection) options() assemble.Options {
	return assemble.Options{Catalog: s.Catalog, Registry: s.Registry}
}

// Document builds the LaTeX document for cfg and writes it.
func Document(cfg types.GenerateConfig, w io.Writer) (*Report, error) {
	sel, err := Load(cfg)
	if err != nil {
		return nil, err
	}

	tmpl := ""
	if cfg.Template != "" {
		data, err := os.ReadFile(cfg.Template)
		if err != nil {
			return nil, fmt.Errorf("reading template: %w", err)
		}
		tmpl = string(data)
	}
	apps, err := appendix.Scan(cfg.AppendixDir)
	if err != nil {
		return nil, err
	}
	lib, err := refs.Load(cfg.ReferencesFile)
	if err != nil {
		return nil, err
	}

	doc := assemble.BuildDocument(sel.Selected, assemble.DocumentOptions{
		Options:         sel.options(),
		Template:        tmpl,
		Title:           Title(cfg, sel.Catalog),
		Fallback:        fallback(cfg),
		Appendixes:      apps,
		AppendixInclude: cfg.AppendixDir,
		References:      lib,
	})

	report := sel.report()
	report.Rendered = len(doc.Rendered)
	report.addFailures(doc.Failures)
	report.MissingReferences = doc.MissingReferences
	report.MissingAppendixes = doc.MissingAppendixes

	return finish(report, OutputPath(cfg, ExtLaTeX), []byte(doc.Text), w)
}

// Quiz builds the Moodle quiz for cfg and writes it.
func Quiz(cfg types.GenerateConfig, w io.Writer) (*Report, error) {
	sel, err := Load(cfg)
	if err != nil {
		return nil, err
	}

	opts := sel.options()
	opts.Render = render.Options{Languages: cfg.Languages, Fallback: fallback(cfg)}
	res := assemble.Quiz(sel.Selected, opts)

	report := sel.report()
	report.Rendered = len(res.Rendered)
	report.addFailures(res.Failures)

	data, err := moodle.Marshal(res.Quiz)
	if err != nil {
		return report, err
	}
	return finish(report, OutputPath(cfg, ExtQuiz), data, w)
}

func finish(report *Report, path string, data []byte, w io.Writer) (*Report, error) {
	if report.Selected == 0 {
		slog.Warn("no questions match the filter")
	}
	if err := WriteFileAtomic(path, data); err != nil {
		report.Print(w)
		return report, err
	}
	report.Output = path
	slog.Info("wrote output", "path", path, "bytes", len(data))
	report.Print(w)
	return report, nil
}

// Validate audits the bank without writing anything: rejected rows,
// dropped languages, unrenderable types, unknown citation keys and missing
// appendix files of the selected questions.
func Validate(cfg types.GenerateConfig, w io.Writer) (*Report, error) {
	cfg.AcceptAllTypes = true
	sel, err := Load(cfg)
	if err != nil {
		return nil, err
	}
	report := sel.report()

	var appendixes []string
	for _, q := range sel.Selected {
		if !sel.Registry.Supports(q.Type) {
			report.RenderErrors = append(report.RenderErrors, assemble.Failure{
				ID:  q.ID,
				Err: &render.UnknownRendererError{ID: q.ID, Type: q.Type},
			})
			continue
		}
		report.Rendered++
		if q.Appendix != "" {
			appendixes = append(appendixes, q.Appendix)
		}
	}

	if cfg.ReferencesFile != "" {
		lib, err := refs.Load(cfg.ReferencesFile)
		if err != nil {
			return nil, err
		}
		report.MissingReferences = lib.Missing(refs.CitedKeys(sel.Selected))
	}
	if cfg.AppendixDir != "" {
		apps, err := appendix.Scan(cfg.AppendixDir)
		if err != nil {
			return nil, err
		}
		_, report.MissingAppendixes = apps.Resolve(appendixes)
	}

	report.Print(w)
	return report, nil
}

func fallback(cfg types.GenerateConfig) types.FallbackPolicy {
	if cfg.Fallback == "" {
		return types.DefaultFallback
	}
	return cfg.Fallback
}
