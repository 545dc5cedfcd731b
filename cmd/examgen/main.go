// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the examgen CLI. It collects flags,
// config file values and environment variables into a
// types.GenerateConfig and hands it to the pipeline.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/examgen/internal/appendix"
	"github.com/pdiddy/examgen/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the examgen CLI.
var rootCmd = &cobra.Command{
	Use:   "examgen",
	Short: "Generate exam documents and Moodle quizzes from a question bank",
	Long: `examgen reads a bilingual (Swedish/English) question bank from CSV or
XLSX, validates every row, selects questions by subject, chapter, tag or
type, and renders them as a LaTeX document or a Moodle XML quiz.

Rejected rows never stop a run: they are listed with their row number and
reason, and the remaining questions are still generated.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

// persistentKeys maps viper keys to the root flags bound to them. The same
// keys are read from examgen.yaml and EXAMGEN_* variables.
var persistentKeys = map[string]string{
	"bank":             "bank",
	"sheet":            "sheet",
	"subjects_file":    "subjects-file",
	"appendix_dir":     "appendix-dir",
	"references_file":  "references",
	"fallback":         "fallback",
	"output_dir":       "output-dir",
	"accept_all_types": "accept-all-types",
	"log_level":        "log-level",
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./examgen.yaml or ~/.config/examgen/examgen.yaml)")
	pf.String("bank", "", "question bank file (.csv or .xlsx)")
	pf.String("sheet", "", "XLSX worksheet (default: the first sheet)")
	pf.String("subjects-file", "", "subject catalog YAML (default: built-in catalog)")
	pf.String("appendix-dir", appendix.DefaultIncludeDir, "directory holding appendix .tex files")
	pf.String("references", "", "references.yaml with citable sources")
	pf.String("fallback", string(types.DefaultFallback), "missing language policy: skip or fallback")
	pf.String("output-dir", ".", "directory for generated files")
	pf.Bool("accept-all-types", false, "keep rows whose type has no renderer and report them at render time")
	pf.String("log-level", "info", "log level: debug, info, warn or error")

	for key, flag := range persistentKeys {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("examgen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "examgen"))
		}
	}

	viper.SetEnvPrefix("EXAMGEN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setupLogging installs a text handler on stderr. CI runs only show
// errors so job logs stay readable.
func setupLogging() {
	level := parseLevel(viper.GetString("log_level"))
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		level = slog.LevelError
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
