package tui

import (
	"fmt"

	"github.com/rivo/tview"
	"github.com/soreth/hlmonitor/account"
)

var positionHeaders = []string{"Coin", "Size", "Entry", "Value", "uPnL", "Lev"}

type TuiPositions struct {
	table    *tview.Table
	snapshot func() *account.Snapshot
}

func NewTuiPositions(snapshot func() *account.Snapshot) *TuiPositions {
	table := tview.NewTable()
	table.
		SetSelectable(false, false).
		SetSeparator(tview.Borders.Vertical).
		SetTitle("Positions").SetBorder(true)

	for i, h := range positionHeaders {
		table.SetCell(0, i, tview.NewTableCell(fmt.Sprintf("[yellow]%s", h)).SetExpansion(1).SetAlign(tview.AlignCenter))
	}

	return &TuiPositions{
		table:    table,
		snapshot: snapshot,
	}
}

func (t *TuiPositions) Item() *tview.Table {
	return t.table
}

func (t *TuiPositions) Update() {
	snap := t.snapshot()
	if snap == nil {
		return
	}

	for row := t.table.GetRowCount() - 1; row > 0; row-- {
		t.table.RemoveRow(row)
	}

	for i, p := range snap.Positions {
		var pnlColor = "green"
		if p.UnrealizedPnl.IsNegative() {
			pnlColor = "red"
		}
		cells := []string{
			p.Coin,
			p.Size.String(),
			p.EntryPrice.String(),
			p.Value.String(),
			fmt.Sprintf("[%s]%s", pnlColor, p.UnrealizedPnl.String()),
			fmt.Sprintf("%dx", p.Leverage),
		}
		for j, v := range cells {
			t.table.SetCell(i+1, j, tview.NewTableCell(v).SetExpansion(1).SetAlign(tview.AlignCenter))
		}
	}
}
