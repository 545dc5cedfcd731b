// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/examgen/internal/generate"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the LaTeX question document",
	Long: `Generate loads the question bank, selects questions with the filter
flags and fills the LaTeX template with Swedish, English and bilingual
sections, the bibliography of cited sources and the referenced appendixes.

Without a filter the whole bank is compiled into output.tex; each filter
adds a suffix (output_his.tex, output_chapter2.tex, output_tag_exam.tex).`,
	RunE: runGenerate,
}

func init() {
	addFilterFlags(generateCmd)
	generateCmd.Flags().String("template", "", "LaTeX template with TEMPLATEVAR placeholders (default: built-in)")
	generateCmd.Flags().String("title", "", "document title (default: derived from the filter)")
	generateCmd.Flags().String("output", "", "output file (default: derived from the filter under --output-dir)")
	generateCmd.Flags().Bool("strict", false, "exit non-zero when rows are rejected or questions fail to render")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	report, err := generate.Document(cfg, os.Stdout)
	if err != nil {
		return err
	}
	return strictCheck(cmd, report)
}

func strictCheck(cmd *cobra.Command, report *generate.Report) error {
	strict, _ := cmd.Flags().GetBool("strict")
	if strict && report.HasFailures() {
		return fmt.Errorf("%d row(s) rejected, %d question(s) failed to render",
			len(report.RowErrors), report.FailedQuestions())
	}
	return nil
}
