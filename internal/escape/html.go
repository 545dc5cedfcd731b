// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package escape

import (
	"html"
	"strings"
)

// htmlSpecials neutralizes characters that Moodle filters would otherwise
// interpret: "$$" starts TeX notation and "\(" starts MathJax.
var htmlSpecials = strings.NewReplacer(
	"$", "&#36;",
	`\`, "&#92;",
)

// HTML escapes s as a sequence of HTML paragraphs for Moodle text fields.
func HTML(s string) string {
	paras := splitParagraphs(s)
	if len(paras) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range paras {
		b.WriteString("<p>")
		b.WriteString(HTMLInline(p))
		b.WriteString("</p>")
	}
	return b.String()
}

// HTMLInline escapes s as inline HTML: single newlines become <br />.
func HTMLInline(s string) string {
	var b strings.Builder
	for _, seg := range segments(s) {
		if seg.isPower() {
			b.WriteString(seg.base + "<sup>" + seg.exponent + "</sup>")
			continue
		}
		text := htmlSpecials.Replace(html.EscapeString(seg.text))
		text = strings.ReplaceAll(text, "\r", "")
		b.WriteString(strings.ReplaceAll(text, "\n", "<br />"))
	}
	return b.String()
}

// ShortAnswer escapes a literal accepted answer of a Moodle shortanswer
// question, where '*' is a wildcard.
func ShortAnswer(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "*", `\*`)
}

// Plain collapses all whitespace runs to single spaces.
func Plain(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func splitParagraphs(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var out []string
	for _, p := range strings.Split(s, "\n\n") {
		if p = strings.Trim(p, "\n"); strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
