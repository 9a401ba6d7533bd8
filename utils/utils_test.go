package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$1234.50", FormatUSD(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "$0.00", FormatUSD(decimal.Zero))
	assert.Equal(t, "$10.57", FormatUSD(StringToDecimal("10.567")))
	assert.Equal(t, "$-3.20", FormatUSD(decimal.NewFromFloat(-3.2)))
}

func TestDecimalOrZero(t *testing.T) {
	assert.True(t, DecimalOrZero("").IsZero())
	assert.True(t, DecimalOrZero("not-a-number").IsZero())
	assert.Equal(t, "104.5", DecimalOrZero("104.50").String())
}

func TestStringToDecimalPanics(t *testing.T) {
	assert.Panics(t, func() { StringToDecimal("abc") })
	assert.Equal(t, "0.0004", StringToDecimal("0.0004").String())
}
