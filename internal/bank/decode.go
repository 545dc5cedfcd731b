// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bank

import (
	"bytes"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeText turns raw bank bytes into UTF-8 text with "\n" line endings.
// UTF-16 input must carry a byte-order mark; a UTF-8 mark is dropped.
// Bytes that are not valid UTF-8 are read as Windows-1252, the encoding
// spreadsheet tools commonly use for CSV export.
func decodeText(data []byte) (string, error) {
	var out []byte
	switch {
	case bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE):
		decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err != nil {
			return "", err
		}
		out = decoded
	case utf8.Valid(bytes.TrimPrefix(data, bomUTF8)):
		out = bytes.TrimPrefix(data, bomUTF8)
	default:
		slog.Warn("question bank is not valid UTF-8, decoding as Windows-1252")
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return "", err
		}
		out = decoded
	}
	return normalizeNewlines(string(out)), nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// cleanCell normalizes one cell: NFC composition, "\n" line endings,
// surrounding space removed.
func cleanCell(s string) string {
	return strings.TrimSpace(norm.NFC.String(normalizeNewlines(s)))
}
