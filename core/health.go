package core

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/soreth/hlmonitor/account"
)

// Pauser is an atomic health gate. Transitions are logged once, not on
// every check.
type Pauser struct {
	name   string
	paused atomic.Bool // true: paused, false: unpaused
}

func NewPauser(name string) *Pauser {
	pauser := &Pauser{
		name:   name,
		paused: atomic.Bool{},
	}
	pauser.paused.Store(true)

	return pauser
}

func (p *Pauser) Pause(msg string) {
	if !p.paused.Load() {
		p.paused.Store(true)
		logrus.Errorf("%s: %s", p.name, msg)
	}
}

func (p *Pauser) UnPause(msg string) {
	if p.paused.Load() {
		p.paused.Store(false)
		logrus.Infof("%s: %s", p.name, msg)
	}
}

func (p *Pauser) Value() bool {
	return p.paused.Load()
}

type LastUpdated interface {
	LastUpdate() time.Time
}

// Watchdog probes the provider and watches snapshot age. It pauses on slow
// round trips or stale data; the transition logs fan out to the alert hooks.
type Watchdog struct {
	pinger  account.Pinger
	updated LastUpdated

	pingLimit  time.Duration
	staleLimit time.Duration
	interval   time.Duration

	latencyMs atomic.Int64

	latencyPauser *Pauser
	stalePauser   *Pauser
}

func NewWatchdog(pinger account.Pinger, updated LastUpdated, pingLimit, staleLimit time.Duration) *Watchdog {
	if pingLimit <= 0 {
		pingLimit = 2 * time.Second
	}
	if staleLimit <= 0 {
		staleLimit = 2 * time.Minute
	}
	return &Watchdog{
		pinger:  pinger,
		updated: updated,

		pingLimit:  pingLimit,
		staleLimit: staleLimit,
		interval:   5 * time.Second,

		latencyPauser: NewPauser("latency"),
		stalePauser:   NewPauser("stale"),
	}
}

func (w *Watchdog) Run() {
	for {
		w.check()
		time.Sleep(w.interval)
	}
}

func (w *Watchdog) check() {
	ctx, cancel := context.WithTimeout(context.Background(), w.pingLimit+5*time.Second)
	defer cancel()

	start := time.Now()
	err := w.pinger.Ping(ctx)
	latency := time.Since(start)
	w.latencyMs.Store(latency.Milliseconds())

	if err != nil {
		w.latencyPauser.Pause(fmt.Sprintf("provider unreachable: %v", err))
	} else if latency > w.pingLimit {
		w.latencyPauser.Pause(fmt.Sprintf("%dms: provider round trip over limit", latency.Milliseconds()))
	} else {
		w.latencyPauser.UnPause(fmt.Sprintf("%dms: provider round trip recovered", latency.Milliseconds()))
	}

	last := w.updated.LastUpdate()
	if last.IsZero() {
		return
	}
	if age := time.Since(last); age > w.staleLimit {
		w.stalePauser.Pause(fmt.Sprintf("account snapshot stale for %s", age.Truncate(time.Second)))
	} else {
		w.stalePauser.UnPause(fmt.Sprintf("account snapshot fresh again (%s old)", age.Truncate(time.Second)))
	}
}

func (w *Watchdog) Latency() time.Duration {
	return time.Duration(w.latencyMs.Load()) * time.Millisecond
}

func (w *Watchdog) Healthy() bool {
	return !w.latencyPauser.Value() && !w.stalePauser.Value()
}
