// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/examgen/internal/generate"
	"github.com/pdiddy/examgen/internal/subjects"
)

var titleCmd = &cobra.Command{
	Use:   "title",
	Short: "Print document titles for CI jobs",
}

var titleSubjectCmd = &cobra.Command{
	Use:   "subject CODE",
	Short: "Print the title of a subject document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := subjects.Load(viper.GetString("subjects_file"))
		if err != nil {
			return err
		}
		fmt.Println(generate.SubjectTitle(args[0], catalog))
		return nil
	},
}

var titleChapterCmd = &cobra.Command{
	Use:   "chapter N",
	Short: "Print the title of a chapter document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Printf("Chapter %s Questions\n", args[0])
			return
		}
		fmt.Println(generate.ChapterTitle(n))
	},
}

func init() {
	titleCmd.AddCommand(titleSubjectCmd)
	titleCmd.AddCommand(titleChapterCmd)
	rootCmd.AddCommand(titleCmd)
}
