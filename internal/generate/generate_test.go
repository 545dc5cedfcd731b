// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/examgen/internal/bank"
	"github.com/pdiddy/examgen/internal/render"
	"github.com/pdiddy/examgen/internal/subjects"
	"github.com/pdiddy/examgen/pkg/types"
)

const bankCSV = `id,subject,chapter,type,q_se,ans_se,ans_alt_se,q_en,ans_en,ans_alt_en,q_alt_en,tags,ref,appendix
Q1,HIS,1,sa,Vem?,Turing,,Who?,Turing,,,exam,Knuth1997,ascii_table
Q2,HIS,2,mc,Vilka?,,"*a;b",Which?,,"*a;b",,,,
Q3,BIN,1,sc,,,,Pick?,,"*0;1",,exam,,
Q4,HIS,1,mq,,,,Multi?,,,How_Why,,,
`

type fixture struct {
	dir    string
	cfg    types.GenerateConfig
	outDir string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	bankPath := filepath.Join(dir, "bank.csv")
	require.NoError(t, os.WriteFile(bankPath, []byte(bankCSV), 0o644))

	appDir := filepath.Join(dir, "appendixes")
	require.NoError(t, os.Mkdir(appDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "ascii_table.tex"), []byte("\\chapter{ASCII}\n"), 0o644))

	outDir := filepath.Join(dir, "out")
	return fixture{
		dir:    dir,
		outDir: outDir,
		cfg: types.GenerateConfig{
			Bank:        types.BankConfig{Path: bankPath},
			AppendixDir: appDir,
			Fallback:    types.SkipIfMissing,
			Languages:   types.Bilingual(),
			OutputDir:   outDir,
		},
	}
}

func TestDocumentBySubject(t *testing.T) {
	f := newFixture(t)
	f.cfg.Filter.Subject = "HIS"

	var out bytes.Buffer
	report, err := Document(f.cfg, &out)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Rows)
	assert.Equal(t, 3, report.Loaded)
	assert.Equal(t, 2, report.Selected)
	assert.Equal(t, 2, report.Rendered)
	require.Len(t, report.RowErrors, 1)
	assert.Equal(t, "Q4", report.RowErrors[0].ID)
	assert.True(t, errors.Is(report.RowErrors[0], bank.ErrUnknownType))
	assert.True(t, report.HasFailures())
	assert.Equal(t, []string{"Knuth1997"}, report.MissingReferences)
	assert.Empty(t, report.MissingAppendixes)

	wantPath := filepath.Join(f.outDir, "output_his.tex")
	assert.Equal(t, wantPath, report.Output)
	data, err := os.ReadFile(wantPath)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `\title{History Questions}`)
	assert.Contains(t, text, "Who?")
	assert.NotContains(t, text, "Pick?")
	assert.Contains(t, text, "ascii_table}")
	assert.NotContains(t, text, "<<<TEMPLATEVAR")

	assert.Contains(t, out.String(), "rejected: row 5 (id Q4)")
	assert.Contains(t, out.String(), "Summary: 4 rows, 3 loaded, 1 rejected, 2 selected, 2 rendered, 0 skipped, 0 failed")
	assert.Contains(t, out.String(), "Output written to: "+wantPath)
}

func TestDocumentByChapter(t *testing.T) {
	f := newFixture(t)
	one := 1
	f.cfg.Filter.Chapter = &one

	report, err := Document(f.cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Selected)
	// Q3 has no Swedish content and is skipped in both Swedish sections.
	assert.Len(t, report.Skipped, 2)
	assert.Equal(t, 1, report.SkippedQuestions())
	assert.Equal(t, filepath.Join(f.outDir, "output_chapter1.tex"), report.Output)

	data, err := os.ReadFile(report.Output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `\title{Chapter 1 Questions}`)
	assert.Contains(t, string(data), "Pick?")
}

func TestDocumentCountsDistinctQuestions(t *testing.T) {
	f := newFixture(t)
	f.cfg.AcceptAllTypes = true
	one := 1
	f.cfg.Filter.Chapter = &one

	var out bytes.Buffer
	report, err := Document(f.cfg, &out)
	require.NoError(t, err)
	// Q4 fails in all four sections, Q3 is skipped in both Swedish ones.
	assert.Len(t, report.RenderErrors, 4)
	assert.Equal(t, 1, report.FailedQuestions())
	assert.Len(t, report.Skipped, 2)
	assert.Equal(t, 1, report.SkippedQuestions())
	assert.Contains(t, out.String(), "3 selected, 2 rendered, 1 skipped, 1 failed")
}

func TestDocumentDeterministic(t *testing.T) {
	f := newFixture(t)
	first, err := Document(f.cfg, &bytes.Buffer{})
	require.NoError(t, err)
	a, err := os.ReadFile(first.Output)
	require.NoError(t, err)

	second, err := Document(f.cfg, &bytes.Buffer{})
	require.NoError(t, err)
	b, err := os.ReadFile(second.Output)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, filepath.Join(f.outDir, "output.tex"), first.Output)
}

func TestDocumentUnreadableBank(t *testing.T) {
	f := newFixture(t)
	f.cfg.Bank.Path = filepath.Join(f.dir, "missing.csv")

	require.NoError(t, os.MkdirAll(f.outDir, 0o755))
	previous := filepath.Join(f.outDir, "output.tex")
	require.NoError(t, os.WriteFile(previous, []byte("previous"), 0o644))

	var out bytes.Buffer
	report, err := Document(f.cfg, &out)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, bank.ErrSourceUnreadable))
	assert.Empty(t, out.String())

	data, err := os.ReadFile(previous)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestDocumentUnknownSubject(t *testing.T) {
	f := newFixture(t)
	f.cfg.Filter.Subject = "XYZ"
	_, err := Document(f.cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"XYZ"`)
}

func TestDocumentAbsentSubject(t *testing.T) {
	f := newFixture(t)
	f.cfg.Filter.Subject = "HEX"
	report, err := Document(f.cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Selected)
	assert.Equal(t, 0, report.Rendered)
	assert.FileExists(t, report.Output)
}

func TestDocumentCustomTemplate(t *testing.T) {
	f := newFixture(t)
	tmpl := filepath.Join(f.dir, "tmpl.tex")
	require.NoError(t, os.WriteFile(tmpl, []byte("T=<<<TEMPLATEVAR_TITLE>>>\n% <<<TEMPLATEVAR_ENGLISH_QUESTIONS_ONLY>>>\n"), 0o644))
	f.cfg.Template = tmpl
	f.cfg.Title = "Custom"
	f.cfg.OutputPath = filepath.Join(f.dir, "custom.tex")

	report, err := Document(f.cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, f.cfg.OutputPath, report.Output)
	data, err := os.ReadFile(report.Output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "T=Custom\n\\section{History}"))

	f.cfg.Template = filepath.Join(f.dir, "none.tex")
	_, err = Document(f.cfg, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestQuiz(t *testing.T) {
	f := newFixture(t)
	f.cfg.AcceptAllTypes = true

	report, err := Quiz(f.cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 4, report.Loaded)
	assert.Equal(t, 3, report.Rendered)
	require.Len(t, report.RenderErrors, 1)
	assert.Equal(t, "Q4", report.RenderErrors[0].ID)
	assert.True(t, errors.Is(report.RenderErrors[0].Err, render.ErrUnknownRenderer))
	assert.Equal(t, filepath.Join(f.outDir, "output.xml"), report.Output)

	data, err := os.ReadFile(report.Output)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `<question type="shortanswer">`)
	assert.Contains(t, text, `<question type="multichoice">`)
	assert.Contains(t, text, `$course$/top/History/Kapitel 1`)
	assert.Contains(t, text, `class="multilang"`)
}

func TestValidate(t *testing.T) {
	f := newFixture(t)
	refsPath := filepath.Join(f.dir, "references.yaml")
	require.NoError(t, os.WriteFile(refsPath, []byte("references:\n  - citation_key: Other2000\n    title: Other\n"), 0o644))
	f.cfg.ReferencesFile = refsPath
	f.cfg.AppendixDir = filepath.Join(f.dir, "empty")

	var out bytes.Buffer
	report, err := Validate(f.cfg, &out)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Loaded)
	assert.Empty(t, report.RowErrors)
	require.Len(t, report.RenderErrors, 1)
	assert.Equal(t, []string{"Knuth1997"}, report.MissingReferences)
	assert.Equal(t, []string{"ascii_table.tex"}, report.MissingAppendixes)
	assert.Empty(t, report.Output)
	assert.NoFileExists(t, filepath.Join(f.outDir, "output.tex"))
	assert.Contains(t, out.String(), `warning: unknown citation key "Knuth1997"`)
}

func TestTitle(t *testing.T) {
	catalog := subjects.Default()
	two := 2
	tests := []struct {
		name string
		cfg  types.GenerateConfig
		want string
	}{
		{"default", types.GenerateConfig{}, DefaultTitle},
		{"custom wins", types.GenerateConfig{Title: "Mine", Filter: types.FilterConfig{Subject: "HIS"}}, "Mine"},
		{"subject", types.GenerateConfig{Filter: types.FilterConfig{Subject: "bin"}}, "Binary Numbers Questions"},
		{"chapter", types.GenerateConfig{Filter: types.FilterConfig{Chapter: &two}}, "Chapter 2 Questions"},
		{"tag", types.GenerateConfig{Filter: types.FilterConfig{Tag: "exam2021"}}, "exam2021 Questions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.cfg, catalog))
		})
	}
}

func TestOutputPath(t *testing.T) {
	two := 2
	tests := []struct {
		name string
		cfg  types.GenerateConfig
		ext  string
		want string
	}{
		{"all", types.GenerateConfig{OutputDir: "out"}, ExtLaTeX, filepath.Join("out", "output.tex")},
		{"subject", types.GenerateConfig{Filter: types.FilterConfig{Subject: "HIS"}}, ExtLaTeX, "output_his.tex"},
		{"chapter", types.GenerateConfig{Filter: types.FilterConfig{Chapter: &two}}, ExtQuiz, "output_chapter2.xml"},
		{"tag", types.GenerateConfig{Filter: types.FilterConfig{Tag: "Exam 2021"}}, ExtLaTeX, "output_tag_exam-2021.tex"},
		{"combined", types.GenerateConfig{Filter: types.FilterConfig{Subject: "HIS", Chapter: &two}}, ExtLaTeX, "output_his_chapter2.tex"},
		{"explicit", types.GenerateConfig{OutputPath: "x/y.tex", OutputDir: "out"}, ExtLaTeX, "x/y.tex"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputPath(tt.cfg, tt.ext))
		})
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.tex")

	require.NoError(t, WriteFileAtomic(path, []byte("one")))
	require.NoError(t, WriteFileAtomic(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}
