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

// Body renders the type-specific part of one language column, below the
// question text.
type Body func(v Localized, opts Options) string

// Fragment lays out the LaTeX frame every question type shares: heading,
// label, question text with citation and appendix reference, the type's
// body and an optional figure. Side-by-side views become two columns.
func Fragment(q *types.Question, views []Localized, opts Options, body Body) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\\subsubsection*{%s}\n", heading(views, opts.Number))
	fmt.Fprintf(&b, "\\label{%s}\n\n", Label(q, views, opts.WithAnswers))

	if len(views) == 1 {
		writeColumn(&b, q, views[0], opts, body)
	} else {
		b.WriteString("\\noindent\n")
		for i, v := range views {
			if i > 0 {
				b.WriteString("\\hfill\n")
			}
			b.WriteString("\\begin{minipage}[t]{0.48\\textwidth}\n")
			writeColumn(&b, q, v, opts, body)
			b.WriteString("\\end{minipage}\n")
		}
	}

	if q.Figure != "" {
		b.WriteString("\n\\begin{center}\n")
		fmt.Fprintf(&b, "\\includegraphics[width=0.6\\textwidth]{%s}\n", figurePath(q.Figure))
		b.WriteString("\\end{center}\n")
	}
	return b.String()
}

// Label returns the \label of a rendered question. It differs between
// languages and between question-only and answer renderings, so one
// document can hold all of them.
func Label(q *types.Question, views []Localized, withAnswers bool) string {
	langs := make([]string, len(views))
	for i, v := range views {
		langs[i] = string(v.Lang)
	}
	mode := "q"
	if withAnswers {
		mode = "qa"
	}
	return escape.Label(fmt.Sprintf("q:%s:%s:%s", q.ID, strings.Join(langs, "-"), mode))
}

func heading(views []Localized, number int) string {
	parts := make([]string, len(views))
	for i, v := range views {
		parts[i] = escape.LaTeX(i18n.For(v.Lang).Question)
		if number > 0 {
			parts[i] += fmt.Sprintf(" %d", number)
		}
	}
	return strings.Join(parts, " / ")
}

func writeColumn(b *strings.Builder, q *types.Question, v Localized, opts Options, body Body) {
	s := i18n.For(v.Lang)
	if v.Missing {
		fmt.Fprintf(b, "\\textit{%s}\n", escape.LaTeX(s.NotAvailable))
		return
	}
	if v.Fallback() {
		fmt.Fprintf(b, "\\textit{%s}\n\n", escape.LaTeX(s.NotAvailable))
	}

	b.WriteString(escape.LaTeX(v.Content.Question))
	if key := escape.Key(q.Reference); key != "" {
		fmt.Fprintf(b, "~\\cite{%s}", key)
	}
	b.WriteString("\n\n")

	if q.Appendix != "" {
		fmt.Fprintf(b, "\\textit{%s~\\ref{%s}}\n\n", escape.LaTeX(s.SeeAppendix), appendix.Label(q.Appendix))
	}
	b.WriteString(body(v, opts))
}

// figurePath keeps a graphics path usable inside \includegraphics.
func figurePath(p string) string {
	return strings.NewReplacer("{", "", "}", "", "%", "", "\\", "/").Replace(p)
}
