package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafe(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "ascii untouched", in: "Invoice #42 total 1,200.00", want: "Invoice #42 total 1,200.00"},
		{name: "rupee glued to amount", in: "₹500.00", want: "INR 500.00"},
		{name: "rupee with space", in: "₹ 500.00", want: "INR 500.00"},
		{name: "rupee at end", in: "Amount in ₹", want: "Amount in INR"},
		{name: "rupee sign variant", in: "₨10", want: "INR 10"},
		{name: "euro is in repertoire", in: "€20", want: "€20"},
		{name: "pound and yen kept", in: "£5 ¥6", want: "£5 ¥6"},
		{name: "latin1 accents kept", in: "Café Müller", want: "Café Müller"},
		{name: "accents outside repertoire folded", in: "Łódź Ő", want: "?ódz O"},
		{name: "cjk replaced", in: "发票", want: "??"},
		{name: "newline and tab become spaces", in: "a\nb\tc", want: "a b c"},
		{name: "zero width removed", in: "a\u200bb", want: "ab"},
		{name: "ligature decomposed", in: "ﬁle", want: "file"},
		{name: "naira", in: "₦1", want: "NGN 1"},
		{name: "token after letters", in: "Rs₹", want: "Rs INR"},
		{name: "token between word and amount", in: "Total₹500", want: "Total INR 500"},
		{name: "token after folded fraction", in: "⅓₹", want: "1?3 INR"},
		{name: "token after punctuation", in: "(₹5)", want: "(INR 5)"},
		{name: "combining mark composed", in: "a\u0301b", want: "áb"},
		{name: "token before zero width", in: "₹\u200b5", want: "INR 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Safe(tt.in))
		})
	}
}

func TestSafeIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"₹₹",
		"₹500 paid, ₽ 20 due",
		"Łódź 发票 ₿0.1",
		"\u0301combining first",
		"ﬃ ₩ ￦ ﹩",
		"Balance 1,234.00 Dr",
		"tab\there\r\nnewline",
		"Rs₹",
		"⅓₹",
		"a\u0301b",
		"Total₹500₹",
	}

	for _, in := range inputs {
		once := Safe(in)
		assert.Equal(t, once, Safe(once), "input %q", in)
		assert.True(t, isSafe(once), "input %q produced undrawable %q", in, once)
	}
}

func TestCurrencyTokenIsStable(t *testing.T) {
	for r, token := range currencyTokens {
		got, ok := CurrencyToken(r)
		assert.True(t, ok)
		assert.Equal(t, token, got)
		assert.Equal(t, token, Safe(string(r)))
		assert.Equal(t, token+" 1", Safe(string(r)+"1"))
	}
}

func TestEncode(t *testing.T) {
	assert.Equal(t, "INR 5", Encode("₹5"))
	assert.Equal(t, "\x80"+"5", Encode("€5"))
	assert.Equal(t, "caf\xe9", Encode("café"))
}
