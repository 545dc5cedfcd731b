// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/examgen/internal/generate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the question bank without generating output",
	Long: `Validate parses the bank and reports rejected rows, dropped language
content, question types without a renderer, unknown citation keys and
missing appendix files. It exits non-zero when any row is rejected or any
question cannot be rendered.`,
	RunE: runValidate,
}

func init() {
	addFilterFlags(validateCmd)
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	report, err := generate.Validate(cfg, os.Stdout)
	if err != nil {
		return err
	}
	if report.HasFailures() {
		return fmt.Errorf("%d row(s) rejected, %d question(s) without renderer",
			len(report.RowErrors), report.FailedQuestions())
	}
	return nil
}
