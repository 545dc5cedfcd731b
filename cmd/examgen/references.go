// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/examgen/internal/generate"
	"github.com/pdiddy/examgen/internal/refs"
)

var referencesCmd = &cobra.Command{
	Use:   "references",
	Short: "Export the reference library as BibTeX or check cited keys",
	Long: `References reads the file named by --references. By default it writes
the library as BibTeX. With --cited it loads the bank instead and lists
every citation key the questions use, marking keys the library lacks.`,
	RunE: runReferences,
}

func init() {
	referencesCmd.Flags().Bool("cited", false, "list the keys cited by the bank and whether they resolve")
	referencesCmd.Flags().String("output", "", "write BibTeX to this file instead of stdout")

	rootCmd.AddCommand(referencesCmd)
}

func runReferences(cmd *cobra.Command, args []string) error {
	path := viper.GetString("references_file")
	if path == "" {
		path = refs.DefaultFile
	}
	lib, err := refs.Load(path)
	if err != nil {
		return err
	}

	cited, _ := cmd.Flags().GetBool("cited")
	if !cited {
		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			fmt.Print(lib.BibTeX())
			return nil
		}
		if err := generate.WriteFileAtomic(out, []byte(lib.BibTeX())); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %d reference(s) to %s\n", lib.Len(), out)
		return nil
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	sel, err := generate.Load(cfg)
	if err != nil {
		return err
	}
	keys := refs.CitedKeys(sel.Bank.Questions())
	missing := lib.Missing(keys)
	for _, k := range keys {
		if _, ok := lib.Lookup(k); ok {
			fmt.Printf("ok:      %s\n", k)
		} else {
			fmt.Printf("missing: %s\n", k)
		}
	}
	fmt.Printf("\nSummary: %d cited, %d missing\n", len(keys), len(missing))
	if len(missing) > 0 {
		return fmt.Errorf("%d citation key(s) missing from %s", len(missing), path)
	}
	return nil
}
