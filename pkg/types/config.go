package types

import (
	"fmt"
	"strings"
)

// FallbackPolicy decides what happens when a question has no content in a
// requested language.
type FallbackPolicy string

const (
	// FallbackToOther renders the question in the other language with a
	// localized "not available in this language" note.
	FallbackToOther FallbackPolicy = "fallback"

	// SkipIfMissing leaves the question out and reports it as skipped.
	SkipIfMissing FallbackPolicy = "skip"
)

// DefaultFallback is the policy used when none is configured.
const DefaultFallback = SkipIfMissing

// ParseFallbackPolicy resolves a policy name. An empty string yields
// DefaultFallback.
func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch FallbackPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultFallback, nil
	case FallbackToOther:
		return FallbackToOther, nil
	case SkipIfMissing:
		return SkipIfMissing, nil
	}
	return "", fmt.Errorf("unknown fallback policy %q: use %q or %q", s, FallbackToOther, SkipIfMissing)
}

// LanguageSelection chooses which languages a fragment shows: one language,
// or both side by side with Primary first.
type LanguageSelection struct {
	Primary    Language `json:"primary" yaml:"primary"`
	SideBySide bool     `json:"side_by_side" yaml:"side_by_side"`
}

// Single selects one language.
func Single(l Language) LanguageSelection {
	return LanguageSelection{Primary: l}
}

// Bilingual selects both languages side by side, Swedish first.
func Bilingual() LanguageSelection {
	return LanguageSelection{Primary: Swedish, SideBySide: true}
}

// ParseLanguageSelection accepts "sv", "en" or "both".
func ParseLanguageSelection(s string) (LanguageSelection, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "both" {
		return Bilingual(), nil
	}
	l := Language(s)
	if !l.Valid() {
		return LanguageSelection{}, fmt.Errorf("unknown language %q: use sv, en or both", s)
	}
	return Single(l), nil
}

// String returns "sv", "en" or "sv+en".
func (s LanguageSelection) String() string {
	if s.SideBySide {
		return string(s.Primary) + "+" + string(s.Primary.Other())
	}
	return string(s.Primary)
}

// SourceFormat identifies the tabular format of a question bank.
type SourceFormat string

const (
	FormatCSV  SourceFormat = "csv"
	FormatXLSX SourceFormat = "xlsx"
)

// BankConfig locates the question bank.
type BankConfig struct {
	// Path is the bank file (.csv or .xlsx).
	Path string `json:"path" yaml:"path"`

	// Format overrides detection from the file extension.
	Format SourceFormat `json:"format,omitempty" yaml:"format,omitempty"`

	// Sheet selects an XLSX worksheet (default: the first sheet).
	Sheet string `json:"sheet,omitempty" yaml:"sheet,omitempty"`
}

// FilterConfig holds the selection predicates. Zero values mean "any".
type FilterConfig struct {
	Subject string       `json:"subject,omitempty" yaml:"subject,omitempty"`
	Chapter *int         `json:"chapter,omitempty" yaml:"chapter,omitempty"`
	Tag     string       `json:"tag,omitempty" yaml:"tag,omitempty"`
	Type    QuestionType `json:"type,omitempty" yaml:"type,omitempty"`
}

// IsEmpty reports whether no predicate is set.
func (f FilterConfig) IsEmpty() bool {
	return f.Subject == "" && f.Chapter == nil && f.Tag == "" && f.Type == ""
}

// GenerateConfig is the plain configuration the CLI hands to the pipeline.
type GenerateConfig struct {
	Bank BankConfig `json:"bank" yaml:"bank"`

	// SubjectsFile is an optional subject catalog YAML; empty uses the
	// built-in catalog.
	SubjectsFile string `json:"subjects_file,omitempty" yaml:"subjects_file,omitempty"`

	// Template is an optional LaTeX template; empty uses the built-in one.
	Template string `json:"template,omitempty" yaml:"template,omitempty"`

	// AppendixDir holds appendix .tex files referenced by questions.
	AppendixDir string `json:"appendix_dir" yaml:"appendix_dir"`

	// ReferencesFile is an optional references.yaml for cited keys.
	ReferencesFile string `json:"references_file,omitempty" yaml:"references_file,omitempty"`

	Filter FilterConfig `json:"filter" yaml:"filter"`

	// Title overrides the derived document title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	Fallback FallbackPolicy `json:"fallback" yaml:"fallback"`

	// Languages selects the quiz language; documents take their languages
	// from the template placeholders.
	Languages LanguageSelection `json:"languages" yaml:"languages"`

	// OutputDir receives generated files named after the filter.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// OutputPath, when set, overrides the derived output file name.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// AcceptAllTypes lets the parser keep every known question type. Types
	// without a renderer then fail at render time instead of at parse time.
	AcceptAllTypes bool `json:"accept_all_types,omitempty" yaml:"accept_all_types,omitempty"`
}
