//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"

	"github.com/pdiddy/examgen/internal/filter"
	"github.com/pdiddy/examgen/internal/generate"
	"github.com/pdiddy/examgen/pkg/types"
)

// Generate groups the document targets that CI runs per matrix entry.
type Generate mg.Namespace

// defaultBank is used when EXAMGEN_BANK is not set.
const defaultBank = "question_bank/questions.csv"

func bankConfig() types.GenerateConfig {
	path := os.Getenv("EXAMGEN_BANK")
	if path == "" {
		path = defaultBank
	}
	return types.GenerateConfig{
		Bank:        types.BankConfig{Path: path},
		AppendixDir: "appendixes",
		Fallback:    types.DefaultFallback,
		Languages:   types.Bilingual(),
		OutputDir:   "output",
	}
}

// Matrix prints the CI matrix entries for the bank.
func (Generate) Matrix() error {
	sel, err := generate.Load(bankConfig())
	if err != nil {
		return err
	}
	for _, e := range filter.Matrix(sel.Bank) {
		fmt.Printf("%-8s %s\n", e.Type, e.Value)
	}
	return nil
}

// All builds one document per matrix entry into output/, the same set the
// CI workflow produces.
func (Generate) All() error {
	base := bankConfig()
	sel, err := generate.Load(base)
	if err != nil {
		return err
	}

	failed := 0
	for _, e := range filter.Matrix(sel.Bank) {
		fc, err := e.FilterConfig()
		if err != nil {
			return err
		}
		cfg := base
		cfg.Filter = fc
		fmt.Printf("[generate] %s %s\n", e.Type, e.Value)
		report, err := generate.Document(cfg, os.Stdout)
		if err != nil {
			return err
		}
		if report.HasFailures() {
			failed++
		}
	}
	if failed > 0 {
		fmt.Printf("%d document(s) reported failures\n", failed)
	}
	return nil
}

// Quiz builds the bilingual Moodle quiz for the whole bank.
func (Generate) Quiz() error {
	_, err := generate.Quiz(bankConfig(), os.Stdout)
	return err
}
