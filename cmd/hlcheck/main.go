// hlcheck is a connectivity smoke check: it builds the configured account
// manager, performs one snapshot fetch and prints the balance and account
// value. Any failure exits non-zero before anything reaches stdout.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/soreth/hlmonitor/account"
	"github.com/soreth/hlmonitor/binance"
	"github.com/soreth/hlmonitor/config"
	"github.com/soreth/hlmonitor/hyperliquid"
	"github.com/soreth/hlmonitor/utils"
	"github.com/spf13/viper"
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
	viper.SetDefault("Monitor.RefreshInterval", 30000)

	config.Config.Load(configPath)

	// diagnostics only; stdout stays reserved for the two result lines
	logrus.SetFormatter(&config.LogFormatter{})
	logrus.SetOutput(os.Stderr)
}

func main() {
	provider, err := newProvider()
	if err != nil {
		logrus.Fatal(err)
	}

	manager := account.NewManager(provider, time.Duration(config.Config.RefreshInterval)*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := manager.Update(ctx); err != nil {
		logrus.Fatalf("account snapshot failed: %v", err)
	}

	fmt.Printf("Balance: %s\n", utils.FormatUSD(manager.Balance()))
	fmt.Printf("Account Value: %s\n", utils.FormatUSD(manager.AccountValue()))
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
