package pdf

import (
	"strings"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/ledger"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
	"github.com/shopspring/decimal"
)

// formatter renders numbers for one document currency
type formatter struct {
	symbol string
	indian bool
}

func newFormatter(currency string) formatter {
	return formatter{
		symbol: types.GetCurrencySymbol(currency),
		indian: strings.EqualFold(currency, "INR"),
	}
}

// amount formats d with two decimals and digit grouping, without a symbol
func (f formatter) amount(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	out := groupDigits(intPart, f.indian) + "." + frac
	if d.Round(2).IsNegative() {
		return "-" + out
	}
	return out
}

// money prefixes amount with the currency symbol
func (f formatter) money(d decimal.Decimal) string {
	return f.symbol + " " + f.amount(d)
}

// optionalAmount leaves zero cells blank
func (f formatter) optionalAmount(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return f.amount(d)
}

// balance prints the magnitude followed by Dr or Cr
func (f formatter) balance(b ledger.Balance) string {
	return f.amount(b.Abs()) + " " + string(b.Side())
}

func percent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

func quantity(d decimal.Decimal) string {
	return d.String()
}

// groupDigits inserts thousands separators. Indian grouping keeps the last
// three digits together and groups the rest in pairs (12,34,567).
func groupDigits(digits string, indian bool) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	size := 3
	if indian {
		size = 2
	}

	var groups []string
	for len(head) > size {
		groups = append([]string{head[len(head)-size:]}, groups...)
		head = head[:len(head)-size]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(append(groups, tail), ",")
}
