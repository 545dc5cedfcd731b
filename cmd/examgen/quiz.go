// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/examgen/internal/generate"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a Moodle XML quiz",
	Long: `Quiz renders the selected questions as Moodle XML for import into a
question bank. Each subject and chapter becomes a category. With
--languages both, question texts carry multilang spans so Moodle shows the
student's language.`,
	RunE: runQuiz,
}

func init() {
	addFilterFlags(quizCmd)
	quizCmd.Flags().String("languages", "both", "quiz language: sv, en or both")
	quizCmd.Flags().String("output", "", "output file (default: derived from the filter under --output-dir)")
	quizCmd.Flags().Bool("strict", false, "exit non-zero when rows are rejected or questions fail to render")

	rootCmd.AddCommand(quizCmd)
}

func runQuiz(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	report, err := generate.Quiz(cfg, os.Stdout)
	if err != nil {
		return err
	}
	return strictCheck(cmd, report)
}
