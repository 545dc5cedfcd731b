// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bank

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/examgen/internal/subjects"
	"github.com/pdiddy/examgen/pkg/types"
)

// Column names. Per-language columns carry a suffix, see languageSuffix.
const (
	colID       = "id"
	colSubject  = "subject"
	colChapter  = "chapter"
	colType     = "type"
	colTags     = "tags"
	colRef      = "ref"
	colAppendix = "appendix"
	colFigure   = "figure"
)

// requiredColumns must appear in the header.
var requiredColumns = []string{colID, colSubject, colType}

// languageSuffix maps content languages to their column suffix.
var languageSuffix = map[types.Language]string{
	types.Swedish: "se",
	types.English: "en",
}

// Column names for one language's fields.
func questionCol(l types.Language) string    { return "q_" + languageSuffix[l] }
func answerCol(l types.Language) string      { return "ans_" + languageSuffix[l] }
func questionAltCol(l types.Language) string { return "q_alt_" + languageSuffix[l] }
func answerAltCol(l types.Language) string   { return "ans_alt_" + languageSuffix[l] }

// Separators for alternative lists. Answer alternatives use the first
// separator present.
var (
	questionAltSeparators = []string{"_"}
	answerAltSeparators   = []string{";", "|", ","}
	tagSeparators         = []string{";", ",", "|"}
)

// correctMarker prefixes options that are correct answers.
const correctMarker = "*"

// record is one row's cells keyed by lower-case column name.
type record struct {
	row    int
	fields map[string]string
}

func (r record) get(col string) string { return r.fields[col] }

// buildQuestion validates one record. It returns the question and any
// warnings about dropped language content, or a rejection.
func buildQuestion(rec record, catalog *subjects.Catalog, supports func(types.QuestionType) bool) (*types.Question, []*RowError, *RowError) {
	id := rec.get(colID)
	reject := func(field string, cause error, format string, args ...any) *RowError {
		return &RowError{Row: rec.row, ID: id, Field: field, Reason: fmt.Sprintf(format, args...), Err: cause}
	}

	if id == "" {
		return nil, nil, reject(colID, ErrInvalidRow, "missing id")
	}

	subject, ok := catalog.Lookup(rec.get(colSubject))
	if !ok {
		return nil, nil, reject(colSubject, ErrUnknownSubject, "unknown subject %q", rec.get(colSubject))
	}

	chapter := 1
	if raw := rec.get(colChapter); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, nil, reject(colChapter, ErrInvalidRow, "chapter %q is not an integer", raw)
		}
		chapter = n
	}

	rawType := rec.get(colType)
	qt, ok := types.ParseQuestionType(rawType)
	if !ok {
		return nil, nil, reject(colType, ErrUnknownType, "unknown question type %q", rawType)
	}
	if !supports(qt) {
		return nil, nil, reject(colType, ErrUnknownType, "no renderer for question type %q", rawType)
	}

	q := &types.Question{
		ID:        id,
		Subject:   subject.Code,
		Chapter:   chapter,
		Type:      qt,
		Content:   make(map[types.Language]types.Content),
		Tags:      splitList(rec.get(colTags), tagSeparators),
		Reference: rec.get(colRef),
		Appendix:  appendixName(rec.get(colAppendix)),
		Figure:    rec.get(colFigure),
	}

	var warnings []*RowError
	var firstProblem string
	for _, lang := range types.Languages {
		c, present := buildContent(rec, lang)
		if !present {
			continue
		}
		if problem := checkContent(qt, c); problem != "" {
			if firstProblem == "" {
				firstProblem = fmt.Sprintf("%s: %s", lang, problem)
			}
			warnings = append(warnings, &RowError{
				Row:    rec.row,
				ID:     id,
				Field:  questionCol(lang),
				Reason: fmt.Sprintf("%s content dropped: %s", lang, problem),
				Err:    ErrMissingContent,
			})
			continue
		}
		q.Content[lang] = c
	}

	if len(q.Content) == 0 {
		if firstProblem == "" {
			return nil, nil, reject("", ErrMissingContent, "no content in any language")
		}
		return nil, nil, reject("", ErrMissingContent, "no complete content in any language (%s)", firstProblem)
	}
	if qt.IsChoice() {
		sv, hasSV := q.Content[types.Swedish]
		en, hasEN := q.Content[types.English]
		if hasSV && hasEN {
			if problem := optionMismatch(sv.Options, en.Options); problem != "" {
				return nil, nil, reject(answerAltCol(types.English), ErrOptionMismatch, "%s", problem)
			}
		}
	}
	return q, warnings, nil
}

// optionMismatch reports why two languages' options cannot be shown as
// translations of each other: option i of one language must be option i of
// the other, with the same correctness.
func optionMismatch(a, b []types.Option) string {
	if len(a) != len(b) {
		return fmt.Sprintf("sv has %d alternatives but en has %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Correct != b[i].Correct {
			return fmt.Sprintf("alternative %d is marked correct in only one language", i+1)
		}
	}
	return ""
}

// buildContent collects one language's cells. The boolean is false when
// the row has nothing in that language.
func buildContent(rec record, lang types.Language) (types.Content, bool) {
	question := rec.get(questionCol(lang))
	answer := rec.get(answerCol(lang))
	qAlt := rec.get(questionAltCol(lang))
	aAlt := rec.get(answerAltCol(lang))
	if question == "" && answer == "" && qAlt == "" && aAlt == "" {
		return types.Content{}, false
	}
	return types.Content{
		Question:     question,
		Answer:       answer,
		Alternatives: splitList(qAlt, questionAltSeparators),
		Options:      parseOptions(aAlt, answer),
	}, true
}

// parseOptions splits answer alternatives and marks the correct ones:
// options written with a leading '*', or, when no option is starred, the
// options equal to one of the answer's entries.
func parseOptions(raw, answer string) []types.Option {
	texts := splitList(raw, answerAltSeparators)
	if len(texts) == 0 {
		return nil
	}

	opts := make([]types.Option, len(texts))
	starred := false
	for i, t := range texts {
		if strings.HasPrefix(t, correctMarker) {
			starred = true
			opts[i] = types.Option{Text: strings.TrimSpace(strings.TrimPrefix(t, correctMarker)), Correct: true}
			continue
		}
		opts[i] = types.Option{Text: t}
	}
	if starred {
		return opts
	}

	answers := splitList(answer, answerAltSeparators)
	for i := range opts {
		for _, a := range answers {
			if strings.EqualFold(opts[i].Text, a) {
				opts[i].Correct = true
				break
			}
		}
	}
	return opts
}

// checkContent returns why c cannot be rendered as type qt, or "".
func checkContent(qt types.QuestionType, c types.Content) string {
	if c.Question == "" && !(qt == types.TypeMultiQuestion && len(c.Alternatives) > 0) {
		return "missing question text"
	}

	correct := len(c.CorrectOptions())
	switch qt {
	case types.TypeShortAnswer, types.TypeEssay:
		if c.Answer == "" {
			return "missing answer"
		}
	case types.TypeNumber:
		if c.Answer == "" {
			return "missing answer"
		}
		if _, err := ParseNumber(c.Answer); err != nil {
			return fmt.Sprintf("answer %q is not a number", c.Answer)
		}
	case types.TypeSingleChoice, types.TypeDropDown:
		if len(c.Options) == 0 {
			return "missing answer alternatives"
		}
		if correct != 1 {
			return fmt.Sprintf("needs exactly one correct alternative, has %d", correct)
		}
	case types.TypeMultiChoice:
		if len(c.Options) == 0 {
			return "missing answer alternatives"
		}
		if correct == 0 {
			return "needs at least one correct alternative"
		}
	case types.TypeMultiQuestion:
		if len(c.Alternatives) == 0 {
			return "missing question alternatives"
		}
	}
	return ""
}

// ParseNumber reads a numeric answer, accepting a decimal comma.
func ParseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}

// splitList splits s on the first separator it contains, trimming items
// and dropping empty ones. Text without any separator is a single item.
func splitList(s string, separators []string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := []string{s}
	for _, sep := range separators {
		if strings.Contains(s, sep) {
			parts = strings.Split(s, sep)
			break
		}
	}
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// appendixName normalizes an appendix reference to a .tex file name.
func appendixName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if filepath.Ext(s) == "" {
		s += ".tex"
	}
	return filepath.Base(s)
}
