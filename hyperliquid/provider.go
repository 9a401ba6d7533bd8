package hyperliquid

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/soreth/hlmonitor/account"
	"github.com/soreth/hlmonitor/utils"
)

// AccountSource adapts the info API to account.Provider for one user
// address.
type AccountSource struct {
	client   *Client
	user     string
	universe *Universe
}

func NewAccountSource(client *Client, user string) *AccountSource {
	return &AccountSource{
		client:   client,
		user:     user,
		universe: NewUniverse(client),
	}
}

func (s *AccountSource) Name() string { return "hyperliquid" }

// Run starts the background universe refresh. One-shot callers can skip it;
// Snapshot loads the metadata on first use.
func (s *AccountSource) Run() {
	s.universe.Run()
}

// Snapshot combines the perp clearinghouse state with spot balances.
// Balance is the perp withdrawable plus spot USDC; account value is the
// perp margin account value plus spot holdings priced at mid.
func (s *AccountSource) Snapshot(ctx context.Context) (*account.Snapshot, error) {
	state, err := s.client.ClearinghouseState(ctx, s.user)
	if err != nil {
		return nil, err
	}
	spot, err := s.client.SpotClearinghouseState(ctx, s.user)
	if err != nil {
		return nil, err
	}
	mids, err := s.client.AllMids(ctx)
	if err != nil {
		return nil, err
	}

	var (
		balance      = utils.DecimalOrZero(state.Withdrawable)
		accountValue = utils.DecimalOrZero(state.MarginSummary.AccountValue)
		assets       = map[string]string{"USDC (perp)": state.Withdrawable}
		positions    = make([]account.Position, 0, len(state.AssetPositions))
	)

	for _, b := range spot.Balances {
		total := utils.DecimalOrZero(b.Total)
		if b.Coin == "USDC" {
			balance = balance.Add(total)
			accountValue = accountValue.Add(total)
		} else {
			accountValue = accountValue.Add(total.Mul(spotMid(mids, b.Coin)))
		}
		assets[b.Coin] = b.Total
	}

	if err := s.universe.ensure(ctx); err != nil {
		logrus.Warnf("hyperliquid universe unavailable, position sizes unrounded: %v", err)
	}

	for _, p := range state.AssetPositions {
		size := s.universe.RoundSize(p.Position.Coin, utils.DecimalOrZero(p.Position.Szi))
		if size.IsZero() {
			continue
		}
		positions = append(positions, account.Position{
			Coin:          p.Position.Coin,
			Size:          size,
			EntryPrice:    utils.DecimalOrZero(p.Position.EntryPx),
			Value:         utils.DecimalOrZero(p.Position.PositionValue),
			UnrealizedPnl: utils.DecimalOrZero(p.Position.UnrealizedPnl),
			Leverage:      p.Position.Leverage.Value,
		})
	}

	snapTime := time.Now()
	if state.Time > 0 {
		snapTime = time.UnixMilli(state.Time)
	}

	return &account.Snapshot{
		Balance:      balance,
		AccountValue: accountValue,
		Assets:       assets,
		Positions:    positions,
		Time:         snapTime,
	}, nil
}

// Ping exercises the info endpoint with the cheapest query.
func (s *AccountSource) Ping(ctx context.Context) error {
	if _, err := s.client.AllMids(ctx); err != nil {
		return fmt.Errorf("hyperliquid ping: %w", err)
	}
	return nil
}

func spotMid(mids map[string]string, coin string) decimal.Decimal {
	if mid, ok := mids[coin]; ok {
		return utils.DecimalOrZero(mid)
	}
	return decimal.Zero
}
