package dingding

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// DingDingBotHook forwards logrus entries to DingTalk: info to the log bot,
// warnings and worse to the alert bot.
type DingDingBotHook struct {
	infoBot  *DingDingBot
	errorBot *DingDingBot
}

func NewDingDingBotHook(
	logBotAccessToken, logBotSecret,
	errorBotAccessToken, errorBotSecret string,
	chLen int,
	interval time.Duration,
) *DingDingBotHook {
	hook := &DingDingBotHook{
		infoBot:  NewDingDingBot(logBotAccessToken, logBotSecret, chLen, interval),
		errorBot: NewDingDingBot(errorBotAccessToken, errorBotSecret, chLen, interval),
	}

	go hook.infoBot.Start()
	go hook.errorBot.Start()

	return hook
}

func (hook *DingDingBotHook) Fire(entry *logrus.Entry) error {
	msg := fmt.Sprintf("\n%s \n%s\n", entry.Time.Format("2006-01-02 15:04:05.000"), entry.Message)
	switch entry.Level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel:
		select {
		case hook.errorBot.MsgCh <- msg:
		default:
		}
	case logrus.InfoLevel:
		select {
		case hook.infoBot.MsgCh <- msg:
		default:
		}
	default:
	}

	return nil
}

func (hook *DingDingBotHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
