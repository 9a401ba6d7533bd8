package hyperliquid

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInfoServer(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/info", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req map[string]any
		require.NoError(t, json.Unmarshal(body, &req))

		resp, ok := responses[req["type"].(string)]
		if !ok {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, resp)
	}))
}

const clearinghouseStateJSON = `{
	"marginSummary": {
		"accountValue": "2562.30",
		"totalNtlPos": "1200.00",
		"totalRawUsd": "1362.30",
		"totalMarginUsed": "120.00"
	},
	"crossMarginSummary": {
		"accountValue": "2562.30",
		"totalNtlPos": "1200.00",
		"totalRawUsd": "1362.30",
		"totalMarginUsed": "120.00"
	},
	"withdrawable": "1234.50",
	"assetPositions": [
		{
			"type": "oneWay",
			"position": {
				"coin": "ETH",
				"szi": "0.5",
				"entryPx": "2400.0",
				"positionValue": "1200.00",
				"unrealizedPnl": "-12.5",
				"returnOnEquity": "-0.05",
				"liquidationPx": "1800.0",
				"marginUsed": "120.00",
				"leverage": {"type": "cross", "value": 10}
			}
		},
		{
			"type": "oneWay",
			"position": {
				"coin": "BTC",
				"szi": "0.0",
				"entryPx": "0",
				"positionValue": "0",
				"unrealizedPnl": "0",
				"leverage": {"type": "cross", "value": 20}
			}
		}
	],
	"time": 1700000000000
}`

func TestClearinghouseState(t *testing.T) {
	server := newInfoServer(t, map[string]string{
		"clearinghouseState": clearinghouseStateJSON,
	})
	defer server.Close()

	state, err := NewClient(server.URL).ClearinghouseState(context.Background(), "0xabc")
	require.NoError(t, err)

	assert.Equal(t, "2562.30", state.MarginSummary.AccountValue)
	assert.Equal(t, "1234.50", state.Withdrawable)
	require.Len(t, state.AssetPositions, 2)
	assert.Equal(t, "ETH", state.AssetPositions[0].Position.Coin)
	assert.Equal(t, 10, state.AssetPositions[0].Position.Leverage.Value)
	assert.Equal(t, int64(1700000000000), state.Time)
}

func TestAllMids(t *testing.T) {
	server := newInfoServer(t, map[string]string{
		"allMids": `{"BTC": "43000.5", "ETH": "2450.0", "PURR": "0.25"}`,
	})
	defer server.Close()

	mids, err := NewClient(server.URL).AllMids(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "43000.5", mids["BTC"])
	assert.Len(t, mids, 3)
}

func TestMeta(t *testing.T) {
	server := newInfoServer(t, map[string]string{
		"meta": `{"universe": [{"name": "BTC", "szDecimals": 5, "maxLeverage": 50}, {"name": "ETH", "szDecimals": 4, "maxLeverage": 50}]}`,
	})
	defer server.Close()

	meta, err := NewClient(server.URL).Meta(context.Background())
	require.NoError(t, err)
	require.Len(t, meta.Universe, 2)
	assert.Equal(t, 5, meta.Universe[0].SzDecimals)
}

func TestInfoErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid address"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).ClearinghouseState(context.Background(), "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clearinghouseState")
}

func TestAccountSourceSnapshot(t *testing.T) {
	server := newInfoServer(t, map[string]string{
		"clearinghouseState": clearinghouseStateJSON,
		"spotClearinghouseState": `{"balances": [
			{"coin": "USDC", "hold": "0", "total": "100.5", "entryNtl": "0"},
			{"coin": "PURR", "hold": "0", "total": "1000", "entryNtl": "200"}
		]}`,
		"allMids": `{"BTC": "43000.5", "ETH": "2450.0", "PURR": "0.25"}`,
	})
	defer server.Close()

	source := NewAccountSource(NewClient(server.URL), "0xabc")
	assert.Equal(t, "hyperliquid", source.Name())

	snap, err := source.Snapshot(context.Background())
	require.NoError(t, err)

	// 1234.50 withdrawable + 100.5 spot USDC
	assert.Equal(t, "1335", snap.Balance.String())
	// 2562.30 perp + 100.5 USDC + 1000 PURR * 0.25
	assert.Equal(t, "2912.8", snap.AccountValue.String())

	// zero-size position is dropped
	require.Len(t, snap.Positions, 1)
	assert.Equal(t, "ETH", snap.Positions[0].Coin)
	assert.Equal(t, "0.5", snap.Positions[0].Size.String())
	assert.Equal(t, "-12.5", snap.Positions[0].UnrealizedPnl.String())

	assert.Equal(t, "1234.50", snap.Assets["USDC (perp)"])
	assert.Equal(t, "1000", snap.Assets["PURR"])
	assert.Equal(t, int64(1700000000000), snap.Time.UnixMilli())
}

func TestAccountSourceSnapshotRoundsSizes(t *testing.T) {
	server := newInfoServer(t, map[string]string{
		"clearinghouseState": `{
			"marginSummary": {"accountValue": "500.00"},
			"withdrawable": "100.00",
			"assetPositions": [
				{
					"type": "oneWay",
					"position": {
						"coin": "ETH",
						"szi": "0.51239",
						"entryPx": "2400.0",
						"positionValue": "1230.0",
						"unrealizedPnl": "1.5",
						"leverage": {"type": "cross", "value": 10}
					}
				},
				{
					"type": "oneWay",
					"position": {
						"coin": "DOGE",
						"szi": "0.004",
						"entryPx": "0.1",
						"positionValue": "0.0004",
						"unrealizedPnl": "0",
						"leverage": {"type": "cross", "value": 5}
					}
				}
			],
			"time": 1700000000000
		}`,
		"spotClearinghouseState": `{"balances": []}`,
		"allMids":                `{"ETH": "2450.0"}`,
		"meta": `{"universe": [
			{"name": "ETH", "szDecimals": 2, "maxLeverage": 50},
			{"name": "DOGE", "szDecimals": 1, "maxLeverage": 10}
		]}`,
	})
	defer server.Close()

	source := NewAccountSource(NewClient(server.URL), "0xabc")
	snap, err := source.Snapshot(context.Background())
	require.NoError(t, err)

	// sizes truncated to the universe precision, dust positions dropped
	require.Len(t, snap.Positions, 1)
	assert.Equal(t, "ETH", snap.Positions[0].Coin)
	assert.Equal(t, "0.51", snap.Positions[0].Size.String())
}

func TestUniverseRoundSize(t *testing.T) {
	server := newInfoServer(t, map[string]string{
		"meta": `{"universe": [{"name": "BTC", "szDecimals": 3, "maxLeverage": 50}]}`,
	})
	defer server.Close()

	universe := NewUniverse(NewClient(server.URL))
	require.NoError(t, universe.update(context.Background()))

	assert.Equal(t, "0.123", universe.RoundSize("BTC", decimal.RequireFromString("0.12399")).String())
	// unknown coins pass through
	assert.Equal(t, "0.12399", universe.RoundSize("DOGE", decimal.RequireFromString("0.12399")).String())
}
