// Package sanitize rewrites text into the Windows-1252 repertoire of the
// PDF core fonts. Currency glyphs outside that repertoire become their ISO
// code, accented letters lose their marks and anything else becomes "?".
package sanitize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Replacement is drawn for runes that have no representation at all
const Replacement = "?"

var currencyTokens = map[rune]string{
	'₹': "INR",
	'₨': "INR",
	'₽': "RUB",
	'₩': "KRW",
	'₺': "TRY",
	'₦': "NGN",
	'₱': "PHP",
	'₫': "VND",
	'₴': "UAH",
	'₪': "ILS",
	'₵': "GHS",
	'₸': "KZT",
	'₼': "AZN",
	'₾': "GEL",
	'₡': "CRC",
	'₲': "PYG",
	'₭': "LAK",
	'₮': "MNT",
	'₿': "BTC",
	'৳': "BDT",
}

// CurrencyToken returns the ASCII token used for r, if r is a substituted currency glyph
func CurrencyToken(r rune) (string, bool) {
	token, ok := currencyTokens[r]
	return token, ok
}

// Safe returns text with every rune drawable by a Windows-1252 font.
// Currency tokens are kept apart from neighbouring letters and digits by a
// single space. Safe(Safe(s)) == Safe(s) for every s.
func Safe(text string) string {
	if isSafe(text) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	var prev rune
	spaceBefore := false
	write := func(piece string) {
		if piece == "" {
			return
		}
		first, _ := utf8.DecodeRuneInString(piece)
		if spaceBefore && !unicode.IsSpace(first) {
			b.WriteByte(' ')
		}
		spaceBefore = false
		b.WriteString(piece)
		prev, _ = utf8.DecodeLastRuneInString(piece)
	}

	for _, r := range norm.NFC.String(text) {
		if token, ok := currencyTokens[r]; ok {
			if unicode.IsLetter(prev) || unicode.IsDigit(prev) {
				spaceBefore = true
			}
			write(token)
			spaceBefore = true
			continue
		}
		write(safeRune(r))
	}
	return b.String()
}

// Encode sanitizes text and converts it to the single-byte encoding the core fonts expect
func Encode(text string) string {
	out, err := charmap.Windows1252.NewEncoder().String(Safe(text))
	if err != nil {
		// unreachable for sanitized input; keep the document drawable anyway
		return asciiOnly(Safe(text))
	}
	return out
}

func isSafe(text string) bool {
	for _, r := range text {
		if !drawable(r) {
			return false
		}
	}
	return true
}

func drawable(r rune) bool {
	if unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
		return false
	}
	if _, ok := currencyTokens[r]; ok {
		return false
	}
	_, ok := charmap.Windows1252.EncodeRune(r)
	return ok
}

var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func safeRune(r rune) string {
	switch {
	case drawable(r):
		return string(r)
	case unicode.IsControl(r):
		return " "
	case unicode.Is(unicode.Cf, r), unicode.Is(unicode.Mn, r):
		return ""
	}

	folded, _, err := transform.String(stripMarks, string(r))
	if err != nil || folded == "" {
		return Replacement
	}

	var b strings.Builder
	for _, fr := range folded {
		switch {
		case drawable(fr):
			b.WriteRune(fr)
		default:
			if token, ok := currencyTokens[fr]; ok {
				b.WriteString(token)
				continue
			}
			b.WriteString(Replacement)
		}
	}
	return b.String()
}

func asciiOnly(text string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return '?'
		}
		return r
	}, text)
}
