// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package refs loads the bibliography questions cite through their ref
// column and renders it as a LaTeX bibliography or a BibTeX file.
package refs

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/examgen/internal/escape"
	"github.com/pdiddy/examgen/pkg/types"
)

// DefaultFile is the conventional references file name.
const DefaultFile = "references.yaml"

// Library is the set of citable sources, keyed by citation key.
type Library struct {
	entries []types.ReferenceEntry
	byKey   map[string]int
}

// Load reads a references YAML file. An empty path yields an empty library.
func Load(path string) (*Library, error) {
	if path == "" {
		return &Library{byKey: map[string]int{}}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading references: %w", err)
	}
	lib, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing references: %w", err)
	}
	return lib, nil
}

// Parse builds a library from YAML data. Citation keys must be unique.
func Parse(data []byte) (*Library, error) {
	var file types.ReferencesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	lib := &Library{byKey: make(map[string]int, len(file.References))}
	for _, r := range file.References {
		if r.CitationKey == "" {
			return nil, fmt.Errorf("reference %q has no citation_key", r.Title)
		}
		if _, dup := lib.byKey[r.CitationKey]; dup {
			return nil, fmt.Errorf("duplicate citation key %q", r.CitationKey)
		}
		lib.byKey[r.CitationKey] = len(lib.entries)
		lib.entries = append(lib.entries, r)
	}
	return lib, nil
}

// Lookup returns the entry for key.
func (l *Library) Lookup(key string) (types.ReferenceEntry, bool) {
	i, ok := l.byKey[key]
	if !ok {
		return types.ReferenceEntry{}, false
	}
	return l.entries[i], true
}

// Len returns the number of entries.
func (l *Library) Len() int { return len(l.entries) }

// CitedKeys returns the distinct citation keys the questions use, sorted.
func CitedKeys(qs []*types.Question) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, q := range qs {
		if q.Reference != "" && !seen[q.Reference] {
			seen[q.Reference] = true
			keys = append(keys, q.Reference)
		}
	}
	sort.Strings(keys)
	return keys
}

// Missing returns the keys that have no entry, sorted and without
// duplicates.
func (l *Library) Missing(keys []string) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, k := range keys {
		if _, ok := l.byKey[k]; !ok && !seen[k] {
			seen[k] = true
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	return missing
}

// Bibliography renders a thebibliography environment for the known keys,
// sorted by key. It returns "" when no key is known.
func (l *Library) Bibliography(keys []string) string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	var b strings.Builder
	written := make(map[string]bool)
	for _, k := range sorted {
		r, ok := l.Lookup(k)
		if !ok || written[k] {
			continue
		}
		if len(written) == 0 {
			b.WriteString("\\begin{thebibliography}{99}\n")
		}
		written[k] = true
		fmt.Fprintf(&b, "\\bibitem{%s} %s\n", escape.Key(k), bibItem(r))
	}
	if len(written) == 0 {
		return ""
	}
	b.WriteString("\\end{thebibliography}\n")
	return b.String()
}

func bibItem(r types.ReferenceEntry) string {
	var parts []string
	if len(r.Authors) > 0 {
		parts = append(parts, escape.LaTeX(joinAuthors(r.Authors))+".")
	}
	parts = append(parts, "\\textit{"+escape.LaTeX(r.Title)+"}.")
	switch {
	case r.Venue != "" && r.Year > 0:
		parts = append(parts, fmt.Sprintf("%s, %d.", escape.LaTeX(r.Venue), r.Year))
	case r.Venue != "":
		parts = append(parts, escape.LaTeX(r.Venue)+".")
	case r.Year > 0:
		parts = append(parts, fmt.Sprintf("%d.", r.Year))
	}
	if r.URL != "" {
		parts = append(parts, "\\url{"+urlText(r.URL)+"}")
	}
	return strings.Join(parts, " ")
}

func joinAuthors(authors []string) string {
	if len(authors) == 1 {
		return authors[0]
	}
	return strings.Join(authors[:len(authors)-1], ", ") + " and " + authors[len(authors)-1]
}

// urlText escapes the characters \url cannot take verbatim.
func urlText(u string) string {
	return strings.NewReplacer("%", `\%`, "#", `\#`, "{", "", "}", "").Replace(u)
}

// BibTeX renders every entry as a BibTeX record, in file order.
func (l *Library) BibTeX() string {
	var b strings.Builder
	for _, r := range l.entries {
		fmt.Fprintf(&b, "@article{%s,\n", r.CitationKey)
		fmt.Fprintf(&b, "  title = {%s},\n", r.Title)
		if len(r.Authors) > 0 {
			fmt.Fprintf(&b, "  author = {%s},\n", strings.Join(r.Authors, " and "))
		}
		if r.Year > 0 {
			fmt.Fprintf(&b, "  year = {%d},\n", r.Year)
		}
		if r.Venue != "" {
			fmt.Fprintf(&b, "  journal = {%s},\n", r.Venue)
		}
		if r.URL != "" {
			fmt.Fprintf(&b, "  url = {%s},\n", r.URL)
		}
		fmt.Fprintf(&b, "}\n\n")
	}
	return b.String()
}
