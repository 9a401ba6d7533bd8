package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/soreth/hlmonitor/account"
	"github.com/soreth/hlmonitor/binance"
	"github.com/soreth/hlmonitor/config"
	"github.com/soreth/hlmonitor/core"
	"github.com/soreth/hlmonitor/dingding"
	"github.com/soreth/hlmonitor/hyperliquid"
	"github.com/soreth/hlmonitor/tui"
	"github.com/soreth/hlmonitor/utils"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath = ".config.yaml"
)

func init() {
	viper.SetDefault("Exchange.Name", "hyperliquid")
	viper.SetDefault("Hyperliquid.ApiUrl", hyperliquid.MainnetApiUrl)
	viper.SetDefault("Hyperliquid.AccountAddress", os.Getenv("HL_ACCOUNT_ADDRESS"))
	viper.SetDefault("Binance.Api", os.Getenv("BINANCE_API"))
	viper.SetDefault("Binance.Secret", os.Getenv("BINANCE_SECRET"))

	viper.SetDefault("Mode.UI", false)
	viper.SetDefault("Monitor.RefreshInterval", 30000)
	viper.SetDefault("Monitor.PingLimit", 2000)
	viper.SetDefault("Monitor.StaleLimit", 120000)

	viper.SetDefault("Log.Dir", "./logs")
	viper.SetDefault("Log.MaxSizeMB", 100)
	viper.SetDefault("Log.MaxBackups", 3)
	viper.SetDefault("Log.MaxAgeDays", 7)

	config.Config.Load(configPath)

	logrus.SetFormatter(&config.LogFormatter{})
	logrus.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   filepath.Join(config.Config.Dir, "hlmonitor.log"),
		MaxSize:    config.Config.MaxSizeMB,
		MaxBackups: config.Config.MaxBackups,
		MaxAge:     config.Config.MaxAgeDays,
		Compress:   true,
	}))
}

func main() {
	provider, err := newProvider()
	if err != nil {
		logrus.Fatal(err)
	}

	var (
		manager  = account.NewManager(provider, time.Duration(config.Config.RefreshInterval)*time.Millisecond)
		watchdog = core.NewWatchdog(
			provider.(account.Pinger),
			manager,
			time.Duration(config.Config.PingLimit)*time.Millisecond,
			time.Duration(config.Config.StaleLimit)*time.Millisecond,
		)
	)

	if config.Config.DingDingLogConfig.AccessToken != "" {
		logrus.AddHook(dingding.NewDingDingBotHook(
			config.Config.DingDingLogConfig.AccessToken,
			config.Config.DingDingLogConfig.Secret,
			config.Config.DingDingErrConfig.AccessToken,
			config.Config.DingDingErrConfig.Secret,
			100,
			5*time.Second,
		))
	}

	if runner, ok := provider.(interface{ Run() }); ok {
		runner.Run()
	}
	manager.Run()
	go watchdog.Run()

	if config.Config.UI {
		ui := tui.NewTui(
			manager,
			watchdog,
			manager.Snapshot,
			func() (string, error) { return manager.History().Chart("./imgs") },
			func() { config.Config.Save(configPath) },
		)
		manager.AddBalanceView(ui.Balancer)
		logrus.AddHook(ui.Logger)
		ui.Run()
		return
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	s := <-c

	config.Config.Save(configPath)
	logrus.Info("Exit: ", s)
}

func newProvider() (account.Provider, error) {
	switch config.Config.Exchange.Name {
	case "binance":
		return binance.NewAccountSource(utils.NewBinanceClient()), nil
	case "hyperliquid", "":
		client := hyperliquid.NewClient(config.Config.ApiUrl)
		return hyperliquid.NewAccountSource(client, config.Config.AccountAddress), nil
	default:
		return nil, fmt.Errorf("unknown exchange %q", config.Config.Exchange.Name)
	}
}
