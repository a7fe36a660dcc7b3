// Package normalize canonicalizes folder names and document titles before
// they are sorted and written to a report.
package normalize

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Func maps a piece of library text to its canonical form.
type Func func(string) string

// Mode names accepted by ByName.
const (
	ModeASCII = "ascii"
	ModeNFC   = "nfc"
	ModeNone  = "none"
)

// Modes lists the accepted mode names in display order.
var Modes = []string{ModeASCII, ModeNFC, ModeNone}

// ByName returns the normalizer for a mode name.
func ByName(mode string) (Func, error) {
	switch mode {
	case ModeASCII, "":
		return ASCII, nil
	case ModeNFC:
		return NFC, nil
	case ModeNone:
		return Identity, nil
	default:
		return nil, fmt.Errorf("unknown normalization %q (want %s)", mode, strings.Join(Modes, ", "))
	}
}

// Identity returns s unchanged.
func Identity(s string) string { return s }

// NFC returns the canonical composition of s.
func NFC(s string) string { return norm.NFC.String(s) }

// letters covers characters that have no Unicode decomposition to ASCII.
var letters = map[rune]string{
	'ß': "ss", 'ẞ': "SS",
	'æ': "ae", 'Æ': "AE",
	'œ': "oe", 'Œ': "OE",
	'ø': "o", 'Ø': "O",
	'ł': "l", 'Ł': "L",
	'đ': "d", 'Đ': "D",
	'ð': "d", 'Ð': "D",
	'þ': "th", 'Þ': "TH",
	'ı': "i",
	'‘': "'", '’': "'", '‚': "'",
	'“': `"`, '”': `"`, '„': `"`,
	'–': "-", '—': "-", '‐': "-",
	'…': "...",
	'\u00a0': " ",
}

// ASCII strips diacritics, transliterates common letters and replaces any
// remaining non-ASCII rune with '?'.
func ASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r <= unicode.MaxASCII:
			b.WriteRune(r)
		case letters[r] != "":
			b.WriteString(letters[r])
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}
