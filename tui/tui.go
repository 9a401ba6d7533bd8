package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"
	"github.com/soreth/hlmonitor/account"
	"github.com/soreth/hlmonitor/config"
)

type Logger interface {
	Item() *tview.TextView
	logrus.Hook
}

type Balancer interface {
	Item() *tview.Table
	account.BalanceView
}

type Pane interface {
	Item() *tview.Table
	Update()
}

type Tui struct {
	app           *tview.Application
	closeCallBack func()
	chart         func() (string, error)
	Logger
	Balancer
	Positions Pane
	Status    Pane
}

func NewTui(
	accountInfo AccountInfo,
	health HealthInfo,
	snapshot func() *account.Snapshot,
	chart func() (string, error),
	closeCallBack func(),
) *Tui {
	app := tview.NewApplication()
	return &Tui{
		app:           app,
		closeCallBack: closeCallBack,
		chart:         chart,
		Logger:        NewTuiLogger(),
		Balancer:      NewTuiBalance(),
		Positions:     NewTuiPositions(snapshot),
		Status:        NewTuiStatus(accountInfo, health),
	}
}

func (t *Tui) Run() {
	flex := tview.NewFlex().
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(t.Balancer.Item(), 8, 0, false).
			AddItem(t.Status.Item(), 8, 0, false).
			AddItem(t.configForm(), 0, 1, false),
			50,
			1,
			false,
		).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(t.Logger.Item(), 0, 3, false).
			AddItem(t.Positions.Item(), 0, 1, false),
			0,
			1,
			false,
		)

	go func() {
		var refreshInterval = 500 * time.Millisecond
		time.Sleep(refreshInterval)
		for {
			t.app.Draw()
			t.Status.Update()
			t.Positions.Update()
			time.Sleep(refreshInterval)
		}
	}()

	if err := t.app.SetRoot(flex, true).EnableMouse(true).Run(); err != nil {
		panic(err)
	}
}

func (t *Tui) configForm() *tview.Form {
	form := tview.NewForm().
		AddInputField("RefreshInterval", fmt.Sprintln(config.Config.RefreshInterval), 8, nil, func(text string) {
			num, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return
			}
			config.Config.RefreshInterval = num
		}).
		AddInputField("PingLimit", fmt.Sprintln(config.Config.PingLimit), 8, nil, func(text string) {
			num, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return
			}
			config.Config.PingLimit = num
		}).
		AddInputField("StaleLimit", fmt.Sprintln(config.Config.StaleLimit), 8, nil, func(text string) {
			num, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return
			}
			config.Config.StaleLimit = num
		}).
		AddButton("Chart", func() {
			path, err := t.chart()
			if err != nil {
				logrus.Errorf("render equity chart: %v", err)
				return
			}
			logrus.Infof("equity chart written to %s", path)
		}).
		AddButton("Quit", func() {
			t.Quit()
		})
	form.SetBorder(true).SetTitle("Config")
	return form
}

func (t *Tui) Quit() {
	t.closeCallBack()
	t.app.Stop()
}
