// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package moodle models the Moodle XML question interchange format.
// Only the elements examgen writes are modelled.
package moodle

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Question type attribute values.
const (
	TypeCategory    = "category"
	TypeMultiChoice = "multichoice"
	TypeShortAnswer = "shortanswer"
	TypeNumerical   = "numerical"
	TypeEssay       = "essay"
)

// FormatHTML is the text format of every rich-text field.
const FormatHTML = "html"

// Quiz is the document envelope.
type Quiz struct {
	XMLName   xml.Name   `xml:"quiz"`
	Questions []Question `xml:"question"`
}

// Text is element content written as a CDATA section.
type Text struct {
	Value string `xml:",cdata"`
}

// Field is an element holding a single <text> child.
type Field struct {
	Text Text `xml:"text"`
}

// RichText is a <text> child with a format attribute.
type RichText struct {
	Format string `xml:"format,attr"`
	Text   Text   `xml:"text"`
}

// Answer is one answer alternative with its grade fraction in percent.
type Answer struct {
	Fraction  string    `xml:"fraction,attr"`
	Format    string    `xml:"format,attr,omitempty"`
	Text      Text      `xml:"text"`
	Feedback  *RichText `xml:"feedback,omitempty"`
	Tolerance string    `xml:"tolerance,omitempty"`
}

// Question is one <question> element. Category entries only set Type and
// Category.
type Question struct {
	Type     string `xml:"type,attr"`
	Category *Field `xml:"category,omitempty"`

	Name            *Field    `xml:"name,omitempty"`
	QuestionText    *RichText `xml:"questiontext,omitempty"`
	GeneralFeedback *RichText `xml:"generalfeedback,omitempty"`
	DefaultGrade    string    `xml:"defaultgrade,omitempty"`
	Penalty         string    `xml:"penalty,omitempty"`
	Hidden          string    `xml:"hidden,omitempty"`
	IDNumber        string    `xml:"idnumber,omitempty"`

	// multichoice
	Single          string `xml:"single,omitempty"`
	ShuffleAnswers  string `xml:"shuffleanswers,omitempty"`
	AnswerNumbering string `xml:"answernumbering,omitempty"`

	// shortanswer
	UseCase string `xml:"usecase,omitempty"`

	// essay
	ResponseFormat     string    `xml:"responseformat,omitempty"`
	ResponseRequired   string    `xml:"responserequired,omitempty"`
	ResponseFieldLines string    `xml:"responsefieldlines,omitempty"`
	GraderInfo         *RichText `xml:"graderinfo,omitempty"`

	Answers []Answer `xml:"answer"`
}

// Category returns the entry that files the following questions under
// path, relative to the course's top category.
func Category(parts ...string) Question {
	path := "$course$/top"
	for _, p := range parts {
		path += "/" + strings.ReplaceAll(p, "/", "//")
	}
	return Question{Type: TypeCategory, Category: &Field{Text: Text{Value: path}}}
}

// New returns a question of type typ with the common fields set. id becomes
// both the name and the idnumber; stem must already be HTML.
func New(typ, id, stem string) Question {
	return Question{
		Type:            typ,
		Name:            &Field{Text: Text{Value: id}},
		QuestionText:    HTML(stem),
		GeneralFeedback: HTML(""),
		DefaultGrade:    "1",
		Penalty:         "0.3333333",
		Hidden:          "0",
		IDNumber:        id,
	}
}

// HTML wraps already-escaped HTML as a rich-text field.
func HTML(s string) *RichText {
	return &RichText{Format: FormatHTML, Text: Text{Value: s}}
}

// Fraction formats a grade percentage the way Moodle exports it: up to
// five decimals without trailing zeros.
func Fraction(percent float64) string {
	s := strconv.FormatFloat(percent, 'f', 5, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// ShareOf splits 100% evenly across n correct answers.
func ShareOf(n int) string {
	if n <= 0 {
		return "0"
	}
	return Fraction(100 / float64(n))
}

// Bool formats a Moodle boolean element.
func Bool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// Marshal renders the quiz as an indented XML document.
func Marshal(q Quiz) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(q); err != nil {
		return nil, fmt.Errorf("encoding quiz: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
