// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/examgen/internal/filter"
	"github.com/pdiddy/examgen/internal/generate"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print the CI build matrix for the question bank",
	Long: `Matrix prints one entry per subject, tag and chapter present in the
bank, followed by {"type":"all","value":"ALL"}. CI jobs feed each entry
back to generate as a filter.`,
	RunE: runMatrix,
}

func init() {
	matrixCmd.Flags().String("format", "json", "output format: json or yaml")
	rootCmd.AddCommand(matrixCmd)
}

func runMatrix(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	sel, err := generate.Load(cfg)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	return writeStructured(os.Stdout, format, filter.Matrix(sel.Bank))
}
