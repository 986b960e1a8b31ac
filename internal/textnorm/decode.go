package textnorm

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

// Encoding names reported by Decode.
const (
	EncodingUTF8     = "UTF-8"
	EncodingEUCJP    = "EUC-JP"
	EncodingShiftJIS = "Shift_JIS"
	EncodingLossy    = "UTF-8 (lossy)"
)

type candidate struct {
	name string
	enc  encoding.Encoding
}

// Tried in order after UTF-8. x/text's Shift_JIS decoder implements the
// Windows-31J (CP932) extensions, so it also covers CP932 pages.
var candidates = []candidate{
	{EncodingEUCJP, japanese.EUCJP},
	{EncodingShiftJIS, japanese.ShiftJIS},
}

// Decode converts page bytes to text, trying UTF-8, EUC-JP and Shift_JIS/CP932
// in that order. The first clean decode wins. If none is clean the bytes are
// decoded as UTF-8 with invalid sequences replaced by U+FFFD.
// The name of the encoding used is returned alongside the text.
func Decode(b []byte) (string, string) {
	if utf8.Valid(b) {
		return strings.TrimPrefix(string(b), "\ufeff"), EncodingUTF8
	}

	for _, c := range candidates {
		if s, ok := decodeClean(c.enc, b); ok {
			return s, c.name
		}
	}

	return strings.ToValidUTF8(string(b), string(utf8.RuneError)), EncodingLossy
}

// decodeClean reports ok only when the decoder neither failed nor had to
// substitute the replacement character for an invalid sequence.
func decodeClean(enc encoding.Encoding, b []byte) (string, bool) {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(out) || strings.ContainsRune(string(out), utf8.RuneError) {
		return "", false
	}
	return string(out), true
}
