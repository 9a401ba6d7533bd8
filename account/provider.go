package account

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Provider is an exchange backend able to report the full account state in
// one shot.
type Provider interface {
	Name() string
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Pinger is implemented by providers that support a cheap reachability
// probe, used by the health watchdog.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Position struct {
	Coin          string
	Size          decimal.Decimal
	EntryPrice    decimal.Decimal
	Value         decimal.Decimal
	UnrealizedPnl decimal.Decimal
	Leverage      int
}

// Snapshot is one observation of the account.
//
// Balance is the currently available funds, AccountValue the total account
// valuation including open positions. Assets holds the raw per-asset
// amounts as reported by the exchange, for display.
type Snapshot struct {
	Balance      decimal.Decimal
	AccountValue decimal.Decimal
	Assets       map[string]string
	Positions    []Position
	Time         time.Time
}
