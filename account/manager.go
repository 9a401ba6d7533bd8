package account

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type BalanceView interface {
	View(map[string]string)
}

type BalanceInfo interface {
	BalanceInfo() map[string]string
}

// Manager caches the latest account snapshot from a Provider, refreshes it
// periodically (or on demand via BalanceUpdate) and fans the per-asset
// balances out to registered views.
type Manager struct {
	provider Provider
	interval time.Duration

	snapshot *Snapshot
	history  *History

	updateBalanceCh chan struct{}
	balanceViews    []BalanceView

	L sync.RWMutex
}

func NewManager(provider Provider, interval time.Duration) *Manager {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Manager{
		provider: provider,
		interval: interval,

		history: NewHistory(),

		updateBalanceCh: make(chan struct{}, 1),
		balanceViews:    make([]BalanceView, 0),
		L:               sync.RWMutex{},
	}
}

func (m *Manager) Run() {
	m.AddBalanceView(&logBalanceView{})

	if err := m.Update(context.Background()); err != nil {
		logrus.Errorf("%s: initial account update failed: %v", m.provider.Name(), err)
	}

	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-m.updateBalanceCh:
			case <-ticker.C:
			}
			if err := m.Update(context.Background()); err != nil {
				logrus.Errorf("%s: account update failed: %v", m.provider.Name(), err)
			}
		}
	}()
}

// BalanceUpdate nudges the refresh goroutine. A refresh already pending is
// enough, so the send never blocks.
func (m *Manager) BalanceUpdate() {
	select {
	case m.updateBalanceCh <- struct{}{}:
	default:
	}
}

func (m *Manager) AddBalanceView(view BalanceView) {
	m.L.Lock()
	defer m.L.Unlock()

	m.balanceViews = append(m.balanceViews, view)
}

// Update fetches a fresh snapshot synchronously and publishes it.
func (m *Manager) Update(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	snapshot, err := m.provider.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", m.provider.Name(), err)
	}
	if snapshot.Time.IsZero() {
		snapshot.Time = time.Now()
	}

	m.L.Lock()
	m.snapshot = snapshot
	views := append([]BalanceView(nil), m.balanceViews...)
	m.L.Unlock()

	m.history.Record(snapshot.Time, snapshot.AccountValue)

	for _, view := range views {
		view.View(snapshot.Assets)
	}
	return nil
}

// Balance returns the currently available funds, zero before the first
// successful update.
func (m *Manager) Balance() decimal.Decimal {
	m.L.RLock()
	defer m.L.RUnlock()

	if m.snapshot == nil {
		return decimal.Zero
	}
	return m.snapshot.Balance
}

// AccountValue returns the total account valuation, zero before the first
// successful update.
func (m *Manager) AccountValue() decimal.Decimal {
	m.L.RLock()
	defer m.L.RUnlock()

	if m.snapshot == nil {
		return decimal.Zero
	}
	return m.snapshot.AccountValue
}

func (m *Manager) BalanceInfo() map[string]string {
	m.L.RLock()
	defer m.L.RUnlock()

	if m.snapshot == nil {
		return map[string]string{}
	}
	return m.snapshot.Assets
}

func (m *Manager) Snapshot() *Snapshot {
	m.L.RLock()
	defer m.L.RUnlock()

	return m.snapshot
}

func (m *Manager) LastUpdate() time.Time {
	m.L.RLock()
	defer m.L.RUnlock()

	if m.snapshot == nil {
		return time.Time{}
	}
	return m.snapshot.Time
}

func (m *Manager) History() *History {
	return m.history
}

func (m *Manager) ProviderName() string {
	return m.provider.Name()
}

type logBalanceView struct{}

func (d *logBalanceView) View(balances map[string]string) {
	assets := make([]string, 0, len(balances))
	for k := range balances {
		assets = append(assets, k)
	}
	sort.Strings(assets)

	var b strings.Builder
	for _, asset := range assets {
		fmt.Fprintf(&b, "%s:%s ", asset, balances[asset])
	}

	logrus.Info("Balance: " + b.String())
}
