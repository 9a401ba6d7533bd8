package utils

import (
	binancesdk "github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
	"github.com/soreth/hlmonitor/config"
)

func StringToDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DecimalOrZero parses an exchange-reported amount, treating an empty or
// unparseable value as zero.
func DecimalOrZero(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatUSD renders an amount as a dollar string with exactly two decimal
// places, e.g. 1234.5 -> "$1234.50".
func FormatUSD(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func NewBinanceClient() *binancesdk.Client {
	return binancesdk.NewClient(config.Config.Api, config.Config.Secret)
}
