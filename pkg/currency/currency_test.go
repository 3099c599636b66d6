package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestCatalog(t *testing.T) {
	all := Catalog()
	require.Len(t, all, 4)
	assert.Equal(t, Default, all[0])
	assert.Equal(t, IndianRupee, Default)

	all[0] = Currency{}
	assert.Equal(t, IndianRupee, Catalog()[0])
}

func TestLookup(t *testing.T) {
	c, err := Lookup("euro")
	require.NoError(t, err)
	assert.Equal(t, Euro, c)

	c, err = Lookup("£")
	require.NoError(t, err)
	assert.Equal(t, BritishPound, c)

	_, err = Lookup("Yen")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestCurrency_Validate(t *testing.T) {
	assert.NoError(t, USDollar.Validate())
	assert.ErrorIs(t, Currency{Symbol: "$", Name: "Dollar"}.Validate(), ErrUnknownCurrency)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		currency Currency
		locale   language.Tag
		want     string
	}{
		{"small amount", decimal.NewFromInt(500), IndianRupee, DefaultLocale, "₹500"},
		{"thousands in US locale", decimal.NewFromInt(15000), USDollar, language.AmericanEnglish, "$15,000"},
		{"fraction in US locale", decimal.RequireFromString("1234.5"), USDollar, language.AmericanEnglish, "$1,234.5"},
		{"negative amount", decimal.NewFromInt(-2500), Euro, language.AmericanEnglish, "-€2,500"},
		{"zero", decimal.Zero, BritishPound, language.AmericanEnglish, "£0"},
		{"lakh grouping", decimal.NewFromInt(100000), IndianRupee, DefaultLocale, "₹1,00,000"},
		{"large amount keeps every digit", decimal.RequireFromString("12345678901234.56"), USDollar, language.AmericanEnglish, "$12,345,678,901,234.56"},
		{"large amount in Indian grouping", decimal.RequireFromString("98765432109876.05"), IndianRupee, DefaultLocale, "₹9,87,65,43,21,09,876.05"},
		{"rounds to two fraction digits", decimal.RequireFromString("0.105"), Euro, language.AmericanEnglish, "€0.11"},
		{"rounding carries into the integer part", decimal.RequireFromString("999.999"), USDollar, language.AmericanEnglish, "$1,000"},
		{"beyond 64-bit integers", decimal.RequireFromString("123456789012345678901234.5"), USDollar, language.AmericanEnglish, "$123456789012345678901234.5"},
		{"negative amount rounding to zero", decimal.RequireFromString("-0.001"), Euro, language.AmericanEnglish, "€0"},
		{"locale decimal separator", decimal.RequireFromString("1234.5"), Euro, language.German, "€1.234,5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount, tt.currency, tt.locale))
		})
	}
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, DefaultLocale, ParseLocale(""))
	assert.Equal(t, DefaultLocale, ParseLocale("!!"))
	assert.Equal(t, language.MustParse("de-DE"), ParseLocale("de-DE"))
}
