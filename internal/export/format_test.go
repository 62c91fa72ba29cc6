package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrencyBrazilianGrouping(t *testing.T) {
	assert.Equal(t, "R$ 1.234,50", FormatCurrency(1234.5))
	assert.Equal(t, "R$ 0,00", FormatCurrency(0.0))
	assert.Equal(t, "R$ 1.234.567,89", FormatCurrency(1234567.89))
	assert.Equal(t, "R$ 1.000,00", FormatCurrency(1000))
	assert.Equal(t, "R$ 2.500,00", FormatCurrency(int64(2500)))
}

func TestFormatCurrencyPassesStringsThrough(t *testing.T) {
	assert.Equal(t, "já formatado", FormatCurrency("já formatado"))
	assert.Equal(t, "", FormatCurrency(""))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "120.0%", FormatPercent(120))
	assert.Equal(t, "33.3%", FormatPercent(33.33))
	assert.Equal(t, "0.0%", FormatPercent(0))
}
