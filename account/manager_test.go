package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	snapshot *Snapshot
	err      error
	calls    int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Snapshot(ctx context.Context) (*Snapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	snap := *f.snapshot
	return &snap, nil
}

type recordingView struct {
	seen []map[string]string
}

func (r *recordingView) View(balances map[string]string) {
	r.seen = append(r.seen, balances)
}

func TestManagerUpdate(t *testing.T) {
	provider := &fakeProvider{
		snapshot: &Snapshot{
			Balance:      decimal.RequireFromString("1234.5"),
			AccountValue: decimal.RequireFromString("2562.30"),
			Assets:       map[string]string{"USDC": "1234.5"},
			Time:         time.UnixMilli(1700000000000),
		},
	}
	manager := NewManager(provider, time.Minute)

	// nothing cached before the first update
	assert.True(t, manager.Balance().IsZero())
	assert.True(t, manager.AccountValue().IsZero())
	assert.True(t, manager.LastUpdate().IsZero())
	assert.Empty(t, manager.BalanceInfo())

	view := &recordingView{}
	manager.AddBalanceView(view)

	require.NoError(t, manager.Update(context.Background()))

	assert.Equal(t, "1234.5", manager.Balance().String())
	assert.Equal(t, "2562.3", manager.AccountValue().String())
	assert.Equal(t, int64(1700000000000), manager.LastUpdate().UnixMilli())
	assert.Equal(t, "1234.5", manager.BalanceInfo()["USDC"])
	assert.Equal(t, "fake", manager.ProviderName())

	require.Len(t, view.seen, 1)
	assert.Equal(t, "1234.5", view.seen[0]["USDC"])

	assert.Equal(t, 1, manager.History().Points())
	_, v, ok := manager.History().Last()
	require.True(t, ok)
	assert.InDelta(t, 2562.30, v, 1e-9)
}

func TestManagerUpdateError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	manager := NewManager(provider, time.Minute)

	err := manager.Update(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fake")
	assert.Contains(t, err.Error(), "connection refused")

	// failed update leaves nothing behind
	assert.True(t, manager.Balance().IsZero())
	assert.Zero(t, manager.History().Points())
}

func TestManagerSnapshotFillsTime(t *testing.T) {
	provider := &fakeProvider{
		snapshot: &Snapshot{Balance: decimal.Zero, AccountValue: decimal.Zero},
	}
	manager := NewManager(provider, time.Minute)

	require.NoError(t, manager.Update(context.Background()))
	assert.False(t, manager.LastUpdate().IsZero())
}

func TestBalanceUpdateNeverBlocks(t *testing.T) {
	provider := &fakeProvider{snapshot: &Snapshot{}}
	manager := NewManager(provider, time.Minute)

	// no refresh goroutine running; repeated nudges must not stall
	for i := 0; i < 10; i++ {
		manager.BalanceUpdate()
	}
}
