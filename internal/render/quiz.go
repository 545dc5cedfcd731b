// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"

	"github.com/pdiddy/examgen/internal/appendix"
	"github.com/pdiddy/examgen/internal/escape"
	"github.com/pdiddy/examgen/internal/i18n"
	"github.com/pdiddy/examgen/pkg/types"
)

// Multilang renders text once per view. Several views are wrapped in
// Moodle multilang spans so the quiz shows the student's language.
func Multilang(views []Localized, text func(Localized) string) string {
	if len(views) == 1 {
		return text(views[0])
	}
	var b strings.Builder
	for _, v := range views {
		fmt.Fprintf(&b, `<span lang="%s" class="multilang">%s</span>`, v.Lang, text(v))
	}
	return b.String()
}

// QuizStem returns the question text as Moodle HTML, with the same notes
// the LaTeX frame adds.
func QuizStem(q *types.Question, views []Localized) string {
	return Multilang(views, func(v Localized) string {
		s := i18n.For(v.Lang)
		if v.Missing {
			return note(s.NotAvailable)
		}
		var b strings.Builder
		if v.Fallback() {
			b.WriteString(note(s.NotAvailable))
		}
		b.WriteString(escape.HTML(v.Content.Question))
		if q.Appendix != "" {
			b.WriteString(note(s.SeeAppendix + ": " + appendix.TitleFromFile(q.Appendix)))
		}
		if q.Reference != "" {
			b.WriteString(note(s.Source + ": " + q.Reference))
		}
		return b.String()
	})
}

func note(s string) string {
	return "<p><em>" + escape.HTMLInline(s) + "</em></p>"
}

// present drops views without content.
func present(views []Localized) []Localized {
	out := make([]Localized, 0, len(views))
	for _, v := range views {
		if !v.Missing {
			out = append(out, v)
		}
	}
	return out
}

// answerKey returns the content that decides correctness: the first view
// with content.
func answerKey(views []Localized) types.Content {
	for _, v := range views {
		if !v.Missing {
			return v.Content
		}
	}
	return types.Content{}
}
