//go:build cucumber

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/pdiddy/examgen/internal/bank"
	"github.com/pdiddy/examgen/pkg/types"
)

// TestGenerateScenarios runs the generation feature scenarios.
func TestGenerateScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "generate",
		ScenarioInitializer: InitializeGenerateScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("..", "..", "features", "generate.feature")},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeGenerateScenario wires the generation steps.
func InitializeGenerateScenario(ctx *godog.ScenarioContext) {
	state := &generateState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, state.reset()
	})
	ctx.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		return ctx, os.RemoveAll(state.dir)
	})

	ctx.Step(`^a question bank:$`, state.givenBank)
	ctx.Step(`^the bank also contains the row "([^"]*)"$`, state.givenRow)
	ctx.Step(`^the fallback policy "([^"]*)"$`, state.givenFallback)
	ctx.Step(`^the question bank file is missing$`, state.givenMissingBank)

	ctx.Step(`^I generate the document$`, state.whenDocument)
	ctx.Step(`^I generate the document for subject "([^"]*)"$`, state.whenDocumentForSubject)
	ctx.Step(`^I generate the document for chapter (\d+)$`, state.whenDocumentForChapter)
	ctx.Step(`^I generate the quiz for subject "([^"]*)"$`, state.whenQuizForSubject)

	ctx.Step(`^the run succeeds$`, state.thenSucceeds)
	ctx.Step(`^the run fails because the bank is unreadable$`, state.thenUnreadable)
	ctx.Step(`^(\d+) questions are selected$`, state.thenSelected)
	ctx.Step(`^(\d+) questions? (?:is|are) skipped$`, state.thenSkipped)
	ctx.Step(`^(\d+) rows? (?:is|are) rejected as a duplicate at row (\d+)$`, state.thenDuplicate)
	ctx.Step(`^the (?:document|quiz) contains "((?:[^"\\]|\\.)*)"$`, state.thenContains)
	ctx.Step(`^the document does not contain "([^"]*)"$`, state.thenNotContains)
	ctx.Step(`^the output file is named "([^"]*)"$`, state.thenOutputNamed)
	ctx.Step(`^no output file is written$`, state.thenNoOutput)
}

type generateState struct {
	dir    string
	bank   string
	cfg    types.GenerateConfig
	report *Report
	err    error
	output string
}

func (s *generateState) reset() error {
	dir, err := os.MkdirTemp("", "examgen-feature-*")
	if err != nil {
		return err
	}
	*s = generateState{dir: dir}
	s.cfg = types.GenerateConfig{
		Bank:      types.BankConfig{Path: filepath.Join(dir, "bank.csv")},
		Fallback:  types.SkipIfMissing,
		Languages: types.Bilingual(),
		OutputDir: filepath.Join(dir, "out"),
	}
	return nil
}

func (s *generateState) writeBank() error {
	return os.WriteFile(s.cfg.Bank.Path, []byte(s.bank), 0o644)
}

func (s *generateState) givenBank(doc *godog.DocString) error {
	s.bank = strings.TrimRight(doc.Content, "\n") + "\n"
	return s.writeBank()
}

func (s *generateState) givenRow(row string) error {
	s.bank += row + "\n"
	return s.writeBank()
}

func (s *generateState) givenFallback(policy string) error {
	p, err := types.ParseFallbackPolicy(policy)
	s.cfg.Fallback = p
	return err
}

func (s *generateState) givenMissingBank() error {
	return os.Remove(s.cfg.Bank.Path)
}

func (s *generateState) run(quiz bool) error {
	var w bytes.Buffer
	if quiz {
		s.report, s.err = Quiz(s.cfg, &w)
	} else {
		s.report, s.err = Document(s.cfg, &w)
	}
	if s.err == nil {
		data, err := os.ReadFile(s.report.Output)
		if err != nil {
			return err
		}
		s.output = string(data)
	}
	return nil
}

func (s *generateState) whenDocument() error { return s.run(false) }

func (s *generateState) whenDocumentForSubject(code string) error {
	s.cfg.Filter.Subject = code
	return s.run(false)
}

func (s *generateState) whenDocumentForChapter(n int) error {
	s.cfg.Filter.Chapter = &n
	return s.run(false)
}

func (s *generateState) whenQuizForSubject(code string) error {
	s.cfg.Filter.Subject = code
	return s.run(true)
}

func (s *generateState) thenSucceeds() error {
	if s.err != nil {
		return fmt.Errorf("expected success, got %v", s.err)
	}
	return nil
}

func (s *generateState) thenUnreadable() error {
	if !errors.Is(s.err, bank.ErrSourceUnreadable) {
		return fmt.Errorf("expected an unreadable bank error, got %v", s.err)
	}
	return nil
}

func (s *generateState) thenSelected(n int) error {
	if s.report.Selected != n {
		return fmt.Errorf("selected %d questions, want %d", s.report.Selected, n)
	}
	return nil
}

func (s *generateState) thenSkipped(n int) error {
	if got := s.report.SkippedQuestions(); got != n {
		return fmt.Errorf("skipped %d questions, want %d", got, n)
	}
	return nil
}

func (s *generateState) thenDuplicate(n, row int) error {
	if len(s.report.RowErrors) != n {
		return fmt.Errorf("rejected %d rows, want %d", len(s.report.RowErrors), n)
	}
	for _, e := range s.report.RowErrors {
		if !e.IsDuplicate() || e.Row != row {
			return fmt.Errorf("unexpected rejection: %v", e)
		}
	}
	return nil
}

func (s *generateState) thenContains(text string) error {
	text = strings.ReplaceAll(text, `\"`, `"`)
	if !strings.Contains(s.output, text) {
		return fmt.Errorf("output does not contain %q", text)
	}
	return nil
}

func (s *generateState) thenNotContains(text string) error {
	if strings.Contains(s.output, text) {
		return fmt.Errorf("output unexpectedly contains %q", text)
	}
	return nil
}

func (s *generateState) thenOutputNamed(name string) error {
	if got := filepath.Base(s.report.Output); got != name {
		return fmt.Errorf("output file %s, want %s", got, name)
	}
	return nil
}

func (s *generateState) thenNoOutput() error {
	entries, err := os.ReadDir(s.cfg.OutputDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return fmt.Errorf("output directory holds %d file(s)", len(entries))
	}
	return nil
}
