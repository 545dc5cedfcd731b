// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package escape

import (
	"strings"
	"unicode"
)

// latexSpecials maps characters that are unsafe or unavailable in LaTeX
// text mode to their replacements. Everything not listed is emitted as
// UTF-8 and handled by inputenc.
var latexSpecials = map[rune]string{
	'\\':     `\textbackslash{}`,
	'{':      `\{`,
	'}':      `\}`,
	'&':      `\&`,
	'%':      `\%`,
	'$':      `\$`,
	'#':      `\#`,
	'_':      `\_`,
	'~':      `\textasciitilde{}`,
	'^':      `\textasciicircum{}`,
	'<':      `\textless{}`,
	'>':      `\textgreater{}`,
	'|':      `\textbar{}`,
	'"':      `\textquotedbl{}`,
	'“':      "``",
	'”':      "''",
	'‘':      "`",
	'’':      "'",
	'„':      ",,",
	'«':      `\guillemotleft{}`,
	'»':      `\guillemotright{}`,
	'–':      "--",
	'—':      "---",
	'…':      `\ldots{}`,
	'\u00a0': "~",
	'°':      `\textdegree{}`,
	'€':      `\texteuro{}`,
	'§':      `\S{}`,
	'→':      `$\rightarrow$`,
	'←':      `$\leftarrow$`,
	'↔':      `$\leftrightarrow$`,
	'⇒':      `$\Rightarrow$`,
	'⇔':      `$\Leftrightarrow$`,
	'≤':      `$\leq$`,
	'≥':      `$\geq$`,
	'≠':      `$\neq$`,
	'≈':      `$\approx$`,
	'×':      `$\times$`,
	'÷':      `$\div$`,
	'±':      `$\pm$`,
	'·':      `$\cdot$`,
	'∞':      `$\infty$`,
	'∧':      `$\wedge$`,
	'∨':      `$\vee$`,
	'¬':      `$\neg$`,
	'⊕':      `$\oplus$`,
	'√':      `$\surd$`,
	'Θ':      `$\Theta$`,
	'Ω':      `$\Omega$`,
	'π':      `$\pi$`,
	'λ':      `$\lambda$`,
	'μ':      `$\mu$`,
	'µ':      `$\mu$`,
}

// LaTeX escapes s for LaTeX text mode. Blank lines become paragraph
// breaks, single newlines become \newline, and power notation becomes
// inline math.
func LaTeX(s string) string {
	var b strings.Builder
	for _, seg := range segments(s) {
		if seg.isPower() {
			b.WriteString("$" + seg.base + "^{" + seg.exponent + "}$")
			continue
		}
		writeLaTeXText(&b, seg.text)
	}
	return b.String()
}

func writeLaTeXText(b *strings.Builder, s string) {
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\n' {
			j := i
			for j+1 < len(runes) && (runes[j+1] == '\n' || runes[j+1] == '\r') {
				j++
			}
			if j > i {
				b.WriteString("\n\n")
			} else {
				b.WriteString("\\newline\n")
			}
			i = j
			continue
		}
		if rep, ok := latexSpecials[r]; ok {
			b.WriteString(rep)
			continue
		}
		switch {
		case r == '\t' || r == '\r':
			b.WriteByte(' ')
		case unicode.IsControl(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
}

// Label turns s into a string usable inside \label and \ref: ASCII
// letters, digits, '.', ':' and '-' are kept, anything else becomes '-'.
func Label(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r < unicode.MaxASCII && (isWordByte(byte(r)) || r == '.' || r == ':' || r == '-'):
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Key cleans a citation key for \cite and \bibitem. ASCII letters,
// digits and "_-:./" are kept; anything else is dropped.
func Key(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if r < unicode.MaxASCII && (isWordByte(byte(r)) || strings.ContainsRune("_-:./", r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
