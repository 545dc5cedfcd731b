// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package escape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLaTeX(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text unchanged", "Vad är en bit?", "Vad är en bit?"},
		{"percent ampersand braces", "50% & {x}", `50\% \& \{x\}`},
		{"backslash", `C:\temp`, `C:\textbackslash{}temp`},
		{"underscore and hash", "my_var #1", `my\_var \#1`},
		{"tilde and lone caret", "~a ^ b", `\textasciitilde{}a \textasciicircum{} b`},
		{"dollar", "$5", `\$5`},
		{"curly quotes", "“hej” ‘x’", "``hej'' `x'"},
		{"straight quote", `say "hi"`, `say \textquotedbl{}hi\textquotedbl{}`},
		{"power of two", "2^10 bytes", "$2^{10}$ bytes"},
		{"variable power", "n^2 and 2^n", "$n^{2}$ and $2^{n}$"},
		{"negative exponent", "10^-3", "$10^{-3}$"},
		{"caret glued to word stays literal", "abc^2", `abc\textasciicircum{}2`},
		{"math symbols", "a ≤ b → c", `a $\leq$ b $\rightarrow$ c`},
		{"single newline", "a\nb", "a\\newline\nb"},
		{"blank line is paragraph", "a\n\n\nb", "a\n\nb"},
		{"tab becomes space", "a\tb", "a b"},
		{"control characters dropped", "a\x07b", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LaTeX(tt.in))
		})
	}
}

func TestLaTeXLeavesNoBareSpecials(t *testing.T) {
	out := LaTeX("50% & {x} # _ ~")
	for i, r := range out {
		if strings.ContainsRune("%&{}#_", r) {
			prev := out[:i]
			isEscape := strings.HasSuffix(prev, `\`) ||
				strings.HasSuffix(prev, `\textasciitilde`) ||
				strings.HasSuffix(prev, `\textasciitilde{`)
			assert.True(t, isEscape, "unescaped %q at %d in %q", r, i, out)
		}
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "q:17:sv", Label("q:17:sv"))
	assert.Equal(t, "q:a-b-c", Label("q:a b_c"))
	assert.Equal(t, "appendix:asciitable", Label("appendix:asciitable"))
	assert.Equal(t, "x-y", Label("xåy"))
}

func TestHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"paragraph wrap", "Hej", "<p>Hej</p>"},
		{"entities", "a < b & c", "<p>a &lt; b &amp; c</p>"},
		{"two paragraphs", "one\n\ntwo", "<p>one</p><p>two</p>"},
		{"line break", "one\ntwo", "<p>one<br />two</p>"},
		{"power", "2^8 values", "<p>2<sup>8</sup> values</p>"},
		{"tex triggers neutralized", `$$x$$ \(y\)`, "<p>&#36;&#36;x&#36;&#36; &#92;(y&#92;)</p>"},
		{"empty", "  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTML(tt.in))
		})
	}
}

func TestShortAnswer(t *testing.T) {
	assert.Equal(t, `2\*3`, ShortAnswer(" 2*3 "))
	assert.Equal(t, "Babbage", ShortAnswer("Babbage"))
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "a b c", Plain(" a\n b\t c "))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "Brookshear2019", Key(" Brookshear2019 "))
	assert.Equal(t, "knuth_1997", Key("knuth_1997"))
	assert.Equal(t, "ab", Key("a{b}%"))
}
