// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/examgen/internal/subjects"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List the subject catalog in document order",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := subjects.Load(viper.GetString("subjects_file"))
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		if format == "text" {
			for _, s := range catalog.All() {
				fmt.Printf("%-6s %s\n", s.Code, s.Title)
			}
			return nil
		}
		return writeStructured(os.Stdout, format, catalog.All())
	},
}

func init() {
	subjectsCmd.Flags().String("format", "text", "output format: text, json or yaml")
	rootCmd.AddCommand(subjectsCmd)
}
