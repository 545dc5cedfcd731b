// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package escape makes bank text safe for the two output formats: LaTeX
// text mode and Moodle XML (HTML-formatted text). Both formats share the
// same segmentation so that power notation such as "2^10" is typeset as a
// superscript instead of a literal caret.
package escape

import "regexp"

// powerPattern matches a base and exponent joined by a caret: 2^10, n^2,
// 2^n, 10^-3. Word boundaries are checked separately.
var powerPattern = regexp.MustCompile(`([0-9]+|[A-Za-z])\^(-?[0-9]+|[A-Za-z])`)

// segment is either literal text or a base/exponent pair.
type segment struct {
	text     string
	base     string
	exponent string
}

func (s segment) isPower() bool { return s.base != "" }

// segments splits s into literal text and power-notation pieces. A match
// glued to surrounding letters or digits ("abc^2") stays literal.
func segments(s string) []segment {
	var out []segment
	last := 0
	for _, m := range powerPattern.FindAllStringSubmatchIndex(s, -1) {
		start, end := m[0], m[1]
		if start > 0 && isWordByte(s[start-1]) {
			continue
		}
		if end < len(s) && isWordByte(s[end]) {
			continue
		}
		if start > last {
			out = append(out, segment{text: s[last:start]})
		}
		out = append(out, segment{base: s[m[2]:m[3]], exponent: s[m[4]:m[5]]})
		last = end
	}
	if last < len(s) {
		out = append(out, segment{text: s[last:]})
	}
	return out
}

func isWordByte(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
