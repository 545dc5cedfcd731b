// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strconv"
	"strings"

	"github.com/pdiddy/examgen/internal/escape"
	"github.com/pdiddy/examgen/internal/i18n"
	"github.com/pdiddy/examgen/internal/moodle"
	"github.com/pdiddy/examgen/pkg/types"
)

// answerBody prints the answer when answers are shown and leaves space
// otherwise.
func answerBody(space string, answer func(types.Content) string) Body {
	return func(v Localized, opts Options) string {
		if a := answer(v.Content); opts.WithAnswers && a != "" {
			return "\\textbf{" + escape.LaTeX(i18n.For(v.Lang).Answer) + "}: " + escape.LaTeX(a) + "\n"
		}
		return "\\vspace{" + space + "}\n"
	}
}

func plainAnswer(c types.Content) string { return c.Answer }

type shortAnswer struct{}

// ShortAnswer renders "sa" questions. Every accepted answer is worth full
// marks in the quiz.
func ShortAnswer() Renderer { return shortAnswer{} }

func (shortAnswer) Type() types.QuestionType { return types.TypeShortAnswer }

func (shortAnswer) Document(q *types.Question, views []Localized, opts Options) string {
	return Fragment(q, views, opts, answerBody("2cm", func(c types.Content) string {
		return strings.Join(c.AcceptedAnswers(), "; ")
	}))
}

func (shortAnswer) Quiz(q *types.Question, views []Localized, opts Options) moodle.Question {
	mq := moodle.New(moodle.TypeShortAnswer, q.ID, QuizStem(q, views))
	mq.UseCase = "0"

	seen := make(map[string]bool)
	for _, v := range present(views) {
		for _, a := range v.Content.AcceptedAnswers() {
			a = escape.ShortAnswer(a)
			if seen[a] {
				continue
			}
			seen[a] = true
			mq.Answers = append(mq.Answers, moodle.Answer{
				Fraction: moodle.Fraction(100),
				Format:   moodle.FormatHTML,
				Text:     moodle.Text{Value: a},
				Feedback: moodle.HTML(""),
			})
		}
	}
	return mq
}

type number struct{}

// Number renders "nq" questions as Moodle numerical questions with an
// exact answer.
func Number() Renderer { return number{} }

func (number) Type() types.QuestionType { return types.TypeNumber }

func (number) Document(q *types.Question, views []Localized, opts Options) string {
	return Fragment(q, views, opts, answerBody("2cm", plainAnswer))
}

func (number) Quiz(q *types.Question, views []Localized, opts Options) moodle.Question {
	mq := moodle.New(moodle.TypeNumerical, q.ID, QuizStem(q, views))
	mq.Answers = []moodle.Answer{{
		Fraction:  moodle.Fraction(100),
		Format:    moodle.FormatHTML,
		Text:      moodle.Text{Value: numeric(answerKey(views).Answer)},
		Feedback:  moodle.HTML(""),
		Tolerance: "0",
	}}
	return mq
}

// numeric writes a decimal-comma answer with a decimal point.
func numeric(s string) string {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type essay struct{}

// Essay renders "essay" questions. The answer becomes grader information
// in the quiz.
func Essay() Renderer { return essay{} }

func (essay) Type() types.QuestionType { return types.TypeEssay }

func (essay) Document(q *types.Question, views []Localized, opts Options) string {
	return Fragment(q, views, opts, answerBody("6cm", plainAnswer))
}

func (essay) Quiz(q *types.Question, views []Localized, opts Options) moodle.Question {
	mq := moodle.New(moodle.TypeEssay, q.ID, QuizStem(q, views))
	mq.ResponseFormat = "editor"
	mq.ResponseRequired = "1"
	mq.ResponseFieldLines = "15"
	mq.GraderInfo = moodle.HTML(Multilang(present(views), func(v Localized) string {
		return escape.HTML(v.Content.Answer)
	}))
	return mq
}
