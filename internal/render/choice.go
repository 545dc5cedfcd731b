// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/examgen/internal/escape"
	"github.com/pdiddy/examgen/internal/i18n"
	"github.com/pdiddy/examgen/internal/moodle"
	"github.com/pdiddy/examgen/pkg/types"
)

// choice renders questions answered by picking options. single allows
// exactly one pick.
type choice struct {
	typ    types.QuestionType
	single bool
}

// SingleChoice renders "sc" questions.
func SingleChoice() Renderer { return choice{typ: types.TypeSingleChoice, single: true} }

// MultiChoice renders "mc" questions. Correct options share full marks.
func MultiChoice() Renderer { return choice{typ: types.TypeMultiChoice} }

func (c choice) Type() types.QuestionType { return c.typ }

func (c choice) Document(q *types.Question, views []Localized, opts Options) string {
	return Fragment(q, views, opts, func(v Localized, opts Options) string {
		s := i18n.For(v.Lang)
		hint := s.SelectMultiple
		if c.single {
			hint = s.SelectOne
		}

		var b strings.Builder
		b.WriteString("\\textit{" + escape.LaTeX(hint) + "}\n")
		b.WriteString("\\begin{enumerate}[label=\\alph*)]\n")
		for _, o := range v.Content.Options {
			text := escape.LaTeX(o.Text)
			if opts.WithAnswers && o.Correct {
				text = "\\textbf{" + text + "} \\checkmark"
			}
			b.WriteString("  \\item{} " + text + "\n")
		}
		b.WriteString("\\end{enumerate}\n")
		return b.String()
	})
}

func (c choice) Quiz(q *types.Question, views []Localized, opts Options) moodle.Question {
	mq := moodle.New(moodle.TypeMultiChoice, q.ID, QuizStem(q, views))
	mq.Single = moodle.Bool(c.single)
	mq.ShuffleAnswers = moodle.Bool(true)
	mq.AnswerNumbering = "abc"

	// Option i is the same alternative in every language; the parser
	// rejects rows whose languages disagree on count or correctness.
	key := answerKey(views)
	share := moodle.ShareOf(len(key.CorrectOptions()))
	shown := present(views)
	for i, o := range key.Options {
		fraction := "0"
		if o.Correct {
			fraction = share
		}
		mq.Answers = append(mq.Answers, moodle.Answer{
			Fraction: fraction,
			Format:   moodle.FormatHTML,
			Text:     moodle.Text{Value: optionHTML(shown, i)},
			Feedback: moodle.HTML(""),
		})
	}
	return mq
}

// optionHTML renders option i in every view that has it.
func optionHTML(views []Localized, i int) string {
	var with []Localized
	for _, v := range views {
		if i < len(v.Content.Options) {
			with = append(with, v)
		}
	}
	return Multilang(with, func(v Localized) string {
		return escape.HTMLInline(v.Content.Options[i].Text)
	})
}
