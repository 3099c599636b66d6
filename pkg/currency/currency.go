package currency

import (
	"strings"
	"unicode/utf8"

	"github.com/klokku/pennywise/internal/validation"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency is display-only: switching it never converts stored amounts.
type Currency struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var (
	IndianRupee   = Currency{Symbol: "₹", Name: "Indian Rupee"}
	USDollar      = Currency{Symbol: "$", Name: "US Dollar"}
	Euro          = Currency{Symbol: "€", Name: "Euro"}
	BritishPound  = Currency{Symbol: "£", Name: "British Pound"}
	Default       = IndianRupee
	DefaultLocale = language.MustParse("en-IN")
)

var catalog = []Currency{IndianRupee, USDollar, Euro, BritishPound}

var ErrUnknownCurrency = validation.New("currency is not in the catalog")

// Catalog lists the selectable currencies.
func Catalog() []Currency {
	result := make([]Currency, len(catalog))
	copy(result, catalog)
	return result
}

// Lookup finds a catalog entry by name (case-insensitive) or by symbol.
func Lookup(nameOrSymbol string) (Currency, error) {
	needle := strings.TrimSpace(nameOrSymbol)
	for _, c := range catalog {
		if strings.EqualFold(c.Name, needle) || c.Symbol == needle {
			return c, nil
		}
	}
	return Currency{}, ErrUnknownCurrency
}

func (c Currency) Validate() error {
	for _, known := range catalog {
		if c == known {
			return nil
		}
	}
	return ErrUnknownCurrency
}

// Format renders amount as symbol followed by the number grouped per locale conventions, rounded to at
// most two fraction digits. Negative amounts keep the sign in front of the symbol.
func Format(amount decimal.Decimal, c Currency, locale language.Tag) string {
	printer := message.NewPrinter(locale)
	amount = amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	whole, fraction, _ := strings.Cut(amount.StringFixed(2), ".")
	fraction = strings.TrimRight(fraction, "0")

	intPart := amount.Truncate(0).BigInt()
	if intPart.IsUint64() {
		whole = printer.Sprintf("%v", number.Decimal(intPart.Uint64()))
	}
	if fraction == "" {
		return sign + c.Symbol + whole
	}
	return sign + c.Symbol + whole + decimalSeparator(printer) + fraction
}

func decimalSeparator(printer *message.Printer) string {
	sep := strings.TrimSuffix(strings.TrimPrefix(printer.Sprintf("%v", number.Decimal(1.5)), "1"), "5")
	if utf8.RuneCountInString(sep) != 1 {
		return "."
	}
	return sep
}

// ParseLocale falls back to DefaultLocale for empty or malformed tags.
func ParseLocale(tag string) language.Tag {
	if tag == "" {
		return DefaultLocale
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return DefaultLocale
	}
	return parsed
}
