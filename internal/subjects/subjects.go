// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package subjects holds the subject catalog: the configurable set of
// subject codes a bank may use, their display titles, and their document
// order. A built-in catalog is embedded; a YAML file can replace it so new
// subjects need no code change.
package subjects

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.yaml.in/yaml/v3"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// catalogSchema constrains catalog files before they are decoded.
const catalogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["subjects"],
  "additionalProperties": false,
  "properties": {
    "subjects": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["code", "title"],
        "additionalProperties": false,
        "properties": {
          "code": {"type": "string", "pattern": "^[A-Za-z0-9]+$"},
          "title": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

// Subject is one catalog entry.
type Subject struct {
	Code  string `json:"code" yaml:"code"`
	Title string `json:"title" yaml:"title"`
}

type catalogFile struct {
	Subjects []Subject `yaml:"subjects"`
}

// Catalog is an ordered, case-insensitive set of subjects.
type Catalog struct {
	subjects []Subject
	index    map[string]int
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(builtinCatalog)
	if err != nil {
		panic(fmt.Sprintf("built-in subject catalog: %v", err))
	}
	return c
}

// Load reads a catalog file. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading subject catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("subject catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse validates YAML catalog data against the catalog schema and builds
// the catalog. Codes must be unique ignoring case.
func Parse(data []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(catalogSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("validating schema: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("invalid catalog: %s", strings.Join(msgs, "; "))
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return New(file.Subjects)
}

// New builds a catalog from subjects in document order.
func New(list []Subject) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(list))}
	for _, s := range list {
		s.Code = strings.ToUpper(strings.TrimSpace(s.Code))
		s.Title = strings.TrimSpace(s.Title)
		if s.Code == "" {
			return nil, fmt.Errorf("subject with empty code")
		}
		if _, dup := c.index[s.Code]; dup {
			return nil, fmt.Errorf("duplicate subject code %q", s.Code)
		}
		c.index[s.Code] = len(c.subjects)
		c.subjects = append(c.subjects, s)
	}
	return c, nil
}

// Lookup finds a subject by code, ignoring case.
func (c *Catalog) Lookup(code string) (Subject, bool) {
	i, ok := c.index[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Subject{}, false
	}
	return c.subjects[i], true
}

// Title returns the display title for code, or the code itself if unknown.
func (c *Catalog) Title(code string) string {
	if s, ok := c.Lookup(code); ok {
		return s.Title
	}
	return code
}

// Order returns the document position of code. Unknown codes sort last.
func (c *Catalog) Order(code string) int {
	if i, ok := c.index[strings.ToUpper(code)]; ok {
		return i
	}
	return len(c.subjects)
}

// All returns the subjects in document order.
func (c *Catalog) All() []Subject {
	out := make([]Subject, len(c.subjects))
	copy(out, c.subjects)
	return out
}

// Len returns the number of subjects.
func (c *Catalog) Len() int { return len(c.subjects) }
