package tui

import (
	"sort"

	"github.com/rivo/tview"
)

type TuiBalance struct {
	table *tview.Table
}

func NewTuiBalance() *TuiBalance {
	table := tview.NewTable()
	table.
		SetSelectable(false, false).
		SetSeparator(tview.Borders.Vertical).
		SetTitle("Account").SetBorder(true)

	return &TuiBalance{
		table: table,
	}
}

func (t *TuiBalance) View(balances map[string]string) {
	assets := make([]string, 0, len(balances))
	for k := range balances {
		assets = append(assets, k)
	}
	sort.Strings(assets)

	t.table.Clear()
	for i, asset := range assets {
		t.table.SetCell(i, 0, tview.NewTableCell(asset).SetExpansion(1).SetAlign(tview.AlignCenter))
		t.table.SetCell(i, 1, tview.NewTableCell(balances[asset]).SetExpansion(1).SetAlign(tview.AlignCenter))
	}
}

func (t *TuiBalance) Item() *tview.Table {
	return t.table
}
