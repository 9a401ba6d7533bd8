package dingding

import (
	"time"

	"github.com/CatchZeng/dingtalk/pkg/dingtalk"
)

// DingDingBot batches messages and flushes them to one webhook at a fixed
// interval, so a burst of log lines becomes one notification.
type DingDingBot struct {
	client   *dingtalk.Client
	MsgCh    chan string
	interval time.Duration
}

func NewDingDingBot(accessToken, secret string, chLen int, interval time.Duration) *DingDingBot {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &DingDingBot{
		client:   dingtalk.NewClient(accessToken, secret),
		MsgCh:    make(chan string, chLen),
		interval: interval,
	}
}

func (d *DingDingBot) Start() {
	var (
		msg    string
		ticker = time.NewTicker(d.interval)
	)
	defer ticker.Stop()

	for {
		select {
		case m := <-d.MsgCh:
			msg += m
		case <-ticker.C:
			if msg != "" {
				d.client.Send(dingtalk.NewTextMessage().SetContent(msg))
				msg = ""
			}
		}
	}
}
