package tui

import (
	"fmt"
	"time"

	"github.com/rivo/tview"
	"github.com/shopspring/decimal"
	"github.com/soreth/hlmonitor/utils"
)

type AccountInfo interface {
	ProviderName() string
	Balance() decimal.Decimal
	AccountValue() decimal.Decimal
	LastUpdate() time.Time
}

type HealthInfo interface {
	Latency() time.Duration
	Healthy() bool
}

type TuiStatus struct {
	table   *tview.Table
	account AccountInfo
	health  HealthInfo
}

func NewTuiStatus(account AccountInfo, health HealthInfo) *TuiStatus {
	table := tview.NewTable()
	table.
		SetSelectable(false, false).
		SetSeparator(tview.Borders.Vertical).
		SetTitle("Status").SetBorder(true)

	return &TuiStatus{
		table:   table,
		account: account,
		health:  health,
	}
}

func (t *TuiStatus) Item() *tview.Table {
	return t.table
}

func (t *TuiStatus) Update() {
	var (
		health     = "[red]DEGRADED"
		lastUpdate = "never"
	)
	if t.health.Healthy() {
		health = "[green]OK"
	}
	if last := t.account.LastUpdate(); !last.IsZero() {
		lastUpdate = last.Format("15:04:05")
	}

	rows := [][2]string{
		{"Provider", t.account.ProviderName()},
		{"Balance", utils.FormatUSD(t.account.Balance())},
		{"Account Value", utils.FormatUSD(t.account.AccountValue())},
		{"Last Update", lastUpdate},
		{"Latency", fmt.Sprintf("%dms", t.health.Latency().Milliseconds())},
		{"Health", health},
	}
	for i, row := range rows {
		t.table.SetCell(i, 0, tview.NewTableCell(row[0]).SetExpansion(1).SetAlign(tview.AlignCenter))
		t.table.SetCell(i, 1, tview.NewTableCell(row[1]).SetExpansion(1).SetAlign(tview.AlignCenter))
	}
}
