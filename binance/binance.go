package binance

import (
	"context"
	"fmt"
	"time"

	binancesdk "github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/soreth/hlmonitor/account"
	"github.com/soreth/hlmonitor/utils"
)

const quoteAsset = "USDT"

// AccountSource reports the spot account of a Binance API key as
// account.Provider. The account value prices every held asset against USDT.
type AccountSource struct {
	client *binancesdk.Client
}

func NewAccountSource(client *binancesdk.Client) *AccountSource {
	return &AccountSource{client: client}
}

func (s *AccountSource) Name() string { return "binance" }

func (s *AccountSource) Snapshot(ctx context.Context) (*account.Snapshot, error) {
	res, err := s.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("get binance spot account: %w", err)
	}
	prices, err := s.client.NewListPricesService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("list binance prices: %w", err)
	}

	priceMap := make(map[string]decimal.Decimal, len(prices))
	for _, p := range prices {
		priceMap[p.Symbol] = utils.DecimalOrZero(p.Price)
	}

	var (
		balance = decimal.Zero
		assets  = make(map[string]string)
		held    = make(map[string]decimal.Decimal)
	)
	for _, b := range res.Balances {
		qty := utils.DecimalOrZero(b.Free).Add(utils.DecimalOrZero(b.Locked))
		if qty.IsZero() {
			continue
		}
		held[b.Asset] = qty
		assets[b.Asset] = b.Free
		if b.Asset == quoteAsset {
			balance = utils.DecimalOrZero(b.Free)
		}
	}

	return &account.Snapshot{
		Balance:      balance,
		AccountValue: valuate(held, priceMap),
		Assets:       assets,
		Positions:    nil,
		Time:         time.Now(),
	}, nil
}

func (s *AccountSource) Ping(ctx context.Context) error {
	if err := s.client.NewPingService().Do(ctx); err != nil {
		return fmt.Errorf("binance ping: %w", err)
	}
	return nil
}

// valuate sums every held asset in USDT terms. Assets with no direct USDT
// pair are skipped rather than guessed.
func valuate(held map[string]decimal.Decimal, prices map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for asset, qty := range held {
		if asset == quoteAsset {
			total = total.Add(qty)
			continue
		}
		price, ok := prices[asset+quoteAsset]
		if !ok {
			logrus.Debugf("no %s%s pair, %s not counted in account value", asset, quoteAsset, asset)
			continue
		}
		total = total.Add(qty.Mul(price))
	}
	return total
}
