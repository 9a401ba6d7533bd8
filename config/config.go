package config

import (
	"bytes"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

var (
	Config *AppConfig = &AppConfig{
		Exchange:    &Exchange{Name: "hyperliquid"},
		Hyperliquid: &Hyperliquid{},
		Binance:     &Binance{},
		Mode:        &Mode{},
		Monitor: &Monitor{
			RefreshInterval: 0,
			PingLimit:       0,
			StaleLimit:      0,
		},
		Log: &Log{
			Dir:        "./logs",
			MaxSizeMB:  0,
			MaxBackups: 0,
			MaxAgeDays: 0,
		},
		DingDingLogConfig: &DingDing{},
		DingDingErrConfig: &DingDing{},
	}
)

func (c *AppConfig) Load(filename string) {
	viper.SetConfigFile(filename)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Errorf("Read config error: %v, create a new config file", err.Error())
		config, err := yaml.Marshal(Config)
		if err != nil {
			logrus.Error("Marshal and save config error")
		}
		err = viper.ReadConfig(bytes.NewBuffer(config))
		if err != nil {
			panic("Read config error")
		}
		viper.SafeWriteConfig()
	}

	viper.Unmarshal(c)
	viper.WatchConfig()
}

func (c *AppConfig) Save(filename string) {
	res, err := yaml.Marshal(Config)
	if err != nil {
		panic("Marshal config error")
	}
	viper.ReadConfig(bytes.NewBuffer(res))
	viper.WriteConfig()
}

// AppConfig defines the config of the monitor
type AppConfig struct {
	*Exchange
	*Hyperliquid
	*Binance
	*Mode
	*Monitor
	*Log
	DingDingLogConfig *DingDing
	DingDingErrConfig *DingDing
}

// Exchange selects which account provider backs the manager,
// "hyperliquid" or "binance".
type Exchange struct {
	Name string
}

type Hyperliquid struct {
	ApiUrl         string
	AccountAddress string
}

type Binance struct {
	Api    string
	Secret string
}

type Mode struct {
	UI bool
}

type Monitor struct {
	RefreshInterval int64 // ms
	PingLimit       int64 // ms
	StaleLimit      int64 // ms
}

type Log struct {
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type DingDing struct {
	AccessToken string
	Secret      string
}
