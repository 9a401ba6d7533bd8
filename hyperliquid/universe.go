package hyperliquid

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Universe caches the perp asset metadata and answers size-precision
// questions for display and rounding.
type Universe struct {
	client *Client
	assets map[string]AssetInfo
	lock   sync.RWMutex
}

func NewUniverse(client *Client) *Universe {
	return &Universe{
		client: client,
		assets: make(map[string]AssetInfo),
		lock:   sync.RWMutex{},
	}
}

func (u *Universe) Run() {
	if err := u.update(context.Background()); err != nil {
		logrus.Errorf("update universe error: %v", err.Error())
	}

	go func() {
		for {
			if err := u.update(context.Background()); err == nil {
				time.Sleep(30 * time.Minute)
			} else {
				logrus.Errorf("update universe error: %v", err.Error())
				time.Sleep(time.Minute)
			}
		}
	}()
}

// ensure loads the metadata once for callers that never started Run.
func (u *Universe) ensure(ctx context.Context) error {
	u.lock.RLock()
	loaded := len(u.assets) > 0
	u.lock.RUnlock()

	if loaded {
		return nil
	}
	return u.update(ctx)
}

func (u *Universe) update(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	meta, err := u.client.Meta(ctx)
	if err != nil {
		return err
	}

	u.lock.Lock()
	defer u.lock.Unlock()
	for _, asset := range meta.Universe {
		u.assets[asset.Name] = asset
	}
	return nil
}

func (u *Universe) Asset(coin string) (AssetInfo, bool) {
	u.lock.RLock()
	defer u.lock.RUnlock()

	asset, ok := u.assets[coin]
	return asset, ok
}

// RoundSize truncates a size to the coin's allowed precision. Unknown coins
// pass through unchanged.
func (u *Universe) RoundSize(coin string, size decimal.Decimal) decimal.Decimal {
	asset, ok := u.Asset(coin)
	if !ok {
		return size
	}
	return size.Truncate(int32(asset.SzDecimals))
}
