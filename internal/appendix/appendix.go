// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package appendix finds the appendix chapters questions refer to and
// orders them so that every appendix follows the ones it depends on.
//
// An appendix is a .tex file in the appendix directory. Its title comes
// from the first \chapter or \section command, and it may declare
// dependencies on other appendixes with comment lines such as
//
//	% DEPENDS_ON: ascii_table.tex, binary
package appendix

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/examgen/internal/escape"
)

// DefaultIncludeDir is the directory \include paths are relative to.
const DefaultIncludeDir = "appendixes"

var (
	dependsPattern = regexp.MustCompile(`^%\s*DEPENDS_ON:\s*(.+)`)
	titlePattern   = regexp.MustCompile(`\\(?:chapter|section)\{([^}]+)\}`)
	labelPattern   = regexp.MustCompile(`\\label\{([^}]+)\}`)
	listSeparator  = regexp.MustCompile(`[,\s]+`)
)

// Appendix describes one appendix file.
type Appendix struct {
	// File is the file name, e.g. "ascii_table.tex".
	File string `json:"file" yaml:"file"`

	// Title is the heading declared in the file, or "" when it has none.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Label is the first \label declared in the file, if any.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// DependsOn lists appendix file names that must precede this one.
	DependsOn []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
}

// Stem returns the file name without its extension.
func (a *Appendix) Stem() string { return stem(a.File) }

// Heading returns the declared title, or one derived from the file name.
func (a *Appendix) Heading() string {
	if a.Title != "" {
		return a.Title
	}
	return escape.LaTeX(TitleFromFile(a.File))
}

// Set holds the appendixes of one directory.
type Set struct {
	byFile map[string]*Appendix
}

// Scan reads every *.tex file in dir. A missing directory yields an empty
// set; unreadable files are logged and left out.
func Scan(dir string) (*Set, error) {
	s := &Set{byFile: make(map[string]*Appendix)}
	if dir == "" {
		return s, nil
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading appendix directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".tex" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			slog.Warn("skipping unreadable appendix", "file", e.Name(), "error", err)
			continue
		}
		s.byFile[e.Name()] = Parse(e.Name(), string(data))
	}
	return s, nil
}

// Parse extracts the metadata of one appendix file.
func Parse(file, content string) *Appendix {
	a := &Appendix{File: file}
	if m := titlePattern.FindStringSubmatch(content); m != nil {
		a.Title = m[1]
	}
	if m := labelPattern.FindStringSubmatch(content); m != nil {
		a.Label = m[1]
	}

	seen := make(map[string]bool)
	for _, line := range strings.Split(content, "\n") {
		m := dependsPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		for _, dep := range listSeparator.Split(m[1], -1) {
			if dep == "" {
				continue
			}
			dep = withExt(dep)
			if !seen[dep] && dep != file {
				seen[dep] = true
				a.DependsOn = append(a.DependsOn, dep)
			}
		}
	}
	sort.Strings(a.DependsOn)
	return a
}

// Lookup returns the appendix for a file name.
func (s *Set) Lookup(file string) (*Appendix, bool) {
	a, ok := s.byFile[withExt(file)]
	return a, ok
}

// All returns every appendix sorted by file name.
func (s *Set) All() []*Appendix {
	out := make([]*Appendix, 0, len(s.byFile))
	for _, a := range s.byFile {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out
}

// Len returns the number of appendixes found.
func (s *Set) Len() int { return len(s.byFile) }

// Resolve orders the required appendixes and everything they depend on,
// dependencies first. Required files are visited in name order, so the
// result does not depend on the order they were requested in. Required
// files not in the set are returned as missing; unknown dependencies are
// ignored. Dependency cycles are broken at the first revisit.
func (s *Set) Resolve(required []string) (ordered, missing []string) {
	files := make([]string, 0, len(required))
	seen := make(map[string]bool)
	for _, f := range required {
		f = withExt(f)
		if !seen[f] {
			seen[f] = true
			files = append(files, f)
		}
	}
	sort.Strings(files)

	visited := make(map[string]bool)
	var visit func(string)
	visit = func(f string) {
		if visited[f] {
			return
		}
		visited[f] = true
		a := s.byFile[f]
		for _, dep := range a.DependsOn {
			if _, ok := s.byFile[dep]; ok {
				visit(dep)
			}
		}
		ordered = append(ordered, f)
	}

	for _, f := range files {
		if _, ok := s.byFile[f]; !ok {
			missing = append(missing, f)
			continue
		}
		visit(f)
	}
	return ordered, missing
}

// Section returns the LaTeX appendix part for the required files: an
// \appendix switch, then a \chapter and \include per resolved file. The
// chapter carries the Label questions refer to unless the file itself
// declares that label.
// includeDir is the \include path prefix (DefaultIncludeDir when empty).
// It returns "" when nothing is required.
func (s *Set) Section(required []string, includeDir string) (string, []string) {
	ordered, missing := s.Resolve(required)
	if len(ordered) == 0 {
		return "", missing
	}
	if includeDir == "" {
		includeDir = DefaultIncludeDir
	}

	var b strings.Builder
	b.WriteString("\\appendix\n")
	for _, f := range ordered {
		a := s.byFile[f]
		fmt.Fprintf(&b, "\\chapter{%s}\n", a.Heading())
		if auto := Label(f); a.Label != auto {
			fmt.Fprintf(&b, "\\label{%s}\n", auto)
		}
		fmt.Fprintf(&b, "\\include{%s/%s}\n\n", strings.TrimSuffix(filepath.ToSlash(includeDir), "/"), a.Stem())
	}
	return b.String(), missing
}

// Label returns the label questions use to reference an appendix file:
// "appendix:" followed by the file stem without '-', '_' or spaces.
func Label(file string) string {
	r := strings.NewReplacer("-", "", "_", "", " ", "")
	return escape.Label("appendix:" + r.Replace(stem(file)))
}

// TitleFromFile derives a heading from a file name: "ascii_table.tex"
// becomes "Ascii Table".
func TitleFromFile(file string) string {
	words := strings.ReplaceAll(stem(file), "_", " ")
	return cases.Title(language.English).String(words)
}

func stem(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func withExt(file string) string {
	file = filepath.Base(strings.TrimSpace(file))
	if filepath.Ext(file) == "" {
		file += ".tex"
	}
	return file
}
