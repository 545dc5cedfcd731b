// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/examgen/pkg/types"
)

// addFilterFlags registers the selection flags shared by the commands that
// read the bank.
func addFilterFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("subject", "", "only questions of this subject code (e.g. HIS)")
	f.Int("chapter", 0, "only questions of this chapter")
	f.String("tag", "", "only questions carrying this tag")
	f.String("type", "", "only questions of this type (code or name, e.g. sa or \"Short Answer\")")
}

func filterConfig(cmd *cobra.Command) (types.FilterConfig, error) {
	var fc types.FilterConfig
	fc.Subject, _ = cmd.Flags().GetString("subject")
	fc.Tag, _ = cmd.Flags().GetString("tag")
	if cmd.Flags().Changed("chapter") {
		n, _ := cmd.Flags().GetInt("chapter")
		fc.Chapter = &n
	}
	if s, _ := cmd.Flags().GetString("type"); s != "" {
		qt, ok := types.ParseQuestionType(s)
		if !ok {
			return fc, fmt.Errorf("unknown question type %q", s)
		}
		fc.Type = qt
	}
	return fc, nil
}

// option returns the flag value when it was set on the command line and
// the viper key otherwise.
func option(cmd *cobra.Command, flag, key string) string {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		return f.Value.String()
	}
	return viper.GetString(key)
}

// buildConfig collects the pipeline configuration for cmd.
func buildConfig(cmd *cobra.Command) (types.GenerateConfig, error) {
	cfg := types.GenerateConfig{
		Bank: types.BankConfig{
			Path:  viper.GetString("bank"),
			Sheet: viper.GetString("sheet"),
		},
		SubjectsFile:   viper.GetString("subjects_file"),
		AppendixDir:    viper.GetString("appendix_dir"),
		ReferencesFile: viper.GetString("references_file"),
		OutputDir:      viper.GetString("output_dir"),
		AcceptAllTypes: viper.GetBool("accept_all_types"),
		Template:       option(cmd, "template", "template"),
		Title:          option(cmd, "title", "title"),
		OutputPath:     option(cmd, "output", "output_path"),
	}
	if cfg.Bank.Path == "" {
		return cfg, fmt.Errorf("no question bank: set --bank or bank in examgen.yaml")
	}

	var err error
	if cfg.Fallback, err = types.ParseFallbackPolicy(viper.GetString("fallback")); err != nil {
		return cfg, err
	}
	if cfg.Filter, err = filterConfig(cmd); err != nil {
		return cfg, err
	}

	langs := option(cmd, "languages", "languages")
	if langs == "" {
		langs = "both"
	}
	if cfg.Languages, err = types.ParseLanguageSelection(langs); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// writeStructured encodes v as JSON (one line, as CI matrices expect) or
// YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		return json.NewEncoder(w).Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q: use json or yaml", format)
}
