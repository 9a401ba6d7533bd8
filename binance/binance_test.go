package binance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValuate(t *testing.T) {
	prices := map[string]decimal.Decimal{
		"BTCUSDT": decimal.RequireFromString("43000"),
		"ETHUSDT": decimal.RequireFromString("2500"),
	}

	tests := []struct {
		name string
		held map[string]decimal.Decimal
		want string
	}{
		{
			name: "empty account",
			held: map[string]decimal.Decimal{},
			want: "0",
		},
		{
			name: "quote only",
			held: map[string]decimal.Decimal{"USDT": decimal.RequireFromString("1234.5")},
			want: "1234.5",
		},
		{
			name: "mixed holdings",
			held: map[string]decimal.Decimal{
				"USDT": decimal.RequireFromString("100"),
				"BTC":  decimal.RequireFromString("0.01"),
				"ETH":  decimal.RequireFromString("2"),
			},
			want: "5530",
		},
		{
			name: "asset without a USDT pair is skipped",
			held: map[string]decimal.Decimal{
				"USDT":  decimal.RequireFromString("100"),
				"WEIRD": decimal.RequireFromString("999"),
			},
			want: "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, valuate(tt.held, prices).String())
		})
	}
}
