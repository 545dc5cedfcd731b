// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/examgen/pkg/types"
)

type questions []*types.Question

func (q questions) Questions() []*types.Question { return q }

func sampleBank() questions {
	return questions{
		{ID: "Q1", Subject: "HIS", Chapter: 1, Type: types.TypeShortAnswer, Tags: []string{"exam2021"}},
		{ID: "Q2", Subject: "HIS", Chapter: 2, Type: types.TypeMultiChoice},
		{ID: "Q3", Subject: "BIN", Chapter: 1, Type: types.TypeSingleChoice, Tags: []string{"exam2021", "basics"}},
	}
}

func ids(qs []*types.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func TestSelect(t *testing.T) {
	b := sampleBank()

	tests := []struct {
		name  string
		preds []Predicate
		want  []string
	}{
		{name: "no predicates", want: []string{"Q1", "Q2", "Q3"}},
		{name: "subject", preds: []Predicate{BySubject("HIS")}, want: []string{"Q1", "Q2"}},
		{name: "subject ignores case", preds: []Predicate{BySubject("his")}, want: []string{"Q1", "Q2"}},
		{name: "chapter", preds: []Predicate{ByChapter(1)}, want: []string{"Q1", "Q3"}},
		{name: "subject and chapter", preds: []Predicate{BySubject("HIS"), ByChapter(1)}, want: []string{"Q1"}},
		{name: "tag", preds: []Predicate{ByTag("EXAM2021")}, want: []string{"Q1", "Q3"}},
		{name: "type", preds: []Predicate{ByType(types.TypeSingleChoice)}, want: []string{"Q3"}},
		{name: "absent subject", preds: []Predicate{BySubject("OOP")}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(b, tt.preds...)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSelectPredicateOrder(t *testing.T) {
	b := sampleBank()
	for _, subject := range []string{"HIS", "BIN", "OOP"} {
		for _, chapter := range []int{1, 2, 3} {
			a := Select(b, BySubject(subject), ByChapter(chapter))
			c := Select(b, ByChapter(chapter), BySubject(subject))
			assert.Equal(t, ids(a), ids(c), "subject %s chapter %d", subject, chapter)
		}
	}
}

func TestSelectReturnsSameQuestions(t *testing.T) {
	b := sampleBank()
	got := Select(b, BySubject("BIN"))
	require.Len(t, got, 1)
	assert.Same(t, b[2], got[0])
}

func TestCriteria(t *testing.T) {
	one := 1
	assert.Empty(t, Criteria(types.FilterConfig{}))

	preds := Criteria(types.FilterConfig{Subject: "HIS", Chapter: &one})
	assert.Len(t, preds, 2)
	assert.Equal(t, []string{"Q1"}, ids(Select(sampleBank(), preds...)))

	preds = Criteria(types.FilterConfig{Tag: "basics", Type: types.TypeSingleChoice})
	assert.Equal(t, []string{"Q3"}, ids(Select(sampleBank(), preds...)))
}

func TestDiscovery(t *testing.T) {
	b := sampleBank()
	assert.Equal(t, []string{"BIN", "HIS"}, Subjects(b))
	assert.Equal(t, []int{1, 2}, Chapters(b))
	assert.Equal(t, []string{"basics", "exam2021"}, Tags(b))

	assert.Empty(t, Subjects(questions{}))
}

func TestTagsIgnoreCase(t *testing.T) {
	b := questions{
		{ID: "Q1", Subject: "HIS", Chapter: 1, Tags: []string{"Exam"}},
		{ID: "Q2", Subject: "HIS", Chapter: 1, Tags: []string{"exam", "basics"}},
		{ID: "Q3", Subject: "HIS", Chapter: 1, Tags: []string{"EXAM"}},
	}
	assert.Equal(t, []string{"basics", "Exam"}, Tags(b))

	var tagEntries int
	for _, e := range Matrix(b) {
		if e.Type == KindTag {
			tagEntries++
		}
	}
	assert.Equal(t, 2, tagEntries)
	assert.Len(t, Select(b, ByTag("Exam")), 3)
}

func TestMatrix(t *testing.T) {
	want := []MatrixEntry{
		{Type: KindSubject, Value: "BIN"},
		{Type: KindSubject, Value: "HIS"},
		{Type: KindTag, Value: "basics"},
		{Type: KindTag, Value: "exam2021"},
		{Type: KindChapter, Value: "1"},
		{Type: KindChapter, Value: "2"},
		{Type: KindAll, Value: AllValue},
	}
	assert.Equal(t, want, Matrix(sampleBank()))
	assert.Equal(t, []MatrixEntry{{Type: KindAll, Value: AllValue}}, Matrix(questions{}))
}

func TestMatrixEntryFilterConfig(t *testing.T) {
	cfg, err := MatrixEntry{Type: KindChapter, Value: "2"}.FilterConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg.Chapter)
	assert.Equal(t, 2, *cfg.Chapter)

	cfg, err = MatrixEntry{Type: KindSubject, Value: "HIS"}.FilterConfig()
	require.NoError(t, err)
	assert.Equal(t, "HIS", cfg.Subject)

	cfg, err = MatrixEntry{Type: KindAll, Value: AllValue}.FilterConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsEmpty())

	_, err = MatrixEntry{Type: KindChapter, Value: "x"}.FilterConfig()
	assert.Error(t, err)
}
