// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdiddy/examgen/internal/subjects"
	"github.com/pdiddy/examgen/pkg/types"
)

// DefaultTitle is the title of a document built from the whole bank.
const DefaultTitle = "IDSV - Old Exam Questions, 2021-present"

// Output file extensions.
const (
	ExtLaTeX = ".tex"
	ExtQuiz  = ".xml"
)

// Title returns the document title for cfg: the configured title, or one
// derived from the narrowest filter set (subject, then chapter, then tag).
func Title(cfg types.GenerateConfig, catalog *subjects.Catalog) string {
	f := cfg.Filter
	switch {
	case cfg.Title != "":
		return cfg.Title
	case f.Subject != "":
		return SubjectTitle(f.Subject, catalog)
	case f.Chapter != nil:
		return ChapterTitle(*f.Chapter)
	case f.Tag != "":
		return f.Tag + " Questions"
	}
	return DefaultTitle
}

// SubjectTitle returns "<subject title> Questions".
func SubjectTitle(code string, catalog *subjects.Catalog) string {
	return catalog.Title(code) + " Questions"
}

// ChapterTitle returns "Chapter N Questions".
func ChapterTitle(n int) string {
	return fmt.Sprintf("Chapter %d Questions", n)
}

// OutputPath returns where an output with extension ext goes: the
// configured path, or "output" plus one suffix per filter under the output
// directory, e.g. "output_his_chapter2.tex".
func OutputPath(cfg types.GenerateConfig, ext string) string {
	if cfg.OutputPath != "" {
		return cfg.OutputPath
	}
	name := "output"
	f := cfg.Filter
	if f.Subject != "" {
		name += "_" + strings.ToLower(f.Subject)
	}
	if f.Chapter != nil {
		name += fmt.Sprintf("_chapter%d", *f.Chapter)
	}
	if f.Tag != "" {
		name += "_tag_" + fileSafe(f.Tag)
	}
	if f.Type != "" {
		name += "_" + string(f.Type)
	}
	return filepath.Join(cfg.OutputDir, name+ext)
}

// fileSafe lowercases s and replaces everything but letters and digits.
func fileSafe(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
