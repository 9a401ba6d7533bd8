package account

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vicanso/go-charts/v2"
)

// History keeps the account value over time and can render it as an equity
// curve.
type History struct {
	times  []time.Time
	values []float64

	l sync.RWMutex
}

func NewHistory() *History {
	return &History{
		times:  make([]time.Time, 0),
		values: make([]float64, 0),
		l:      sync.RWMutex{},
	}
}

func (h *History) Record(t time.Time, value decimal.Decimal) {
	h.l.Lock()
	defer h.l.Unlock()

	v, _ := value.Float64()
	h.times = append(h.times, t)
	h.values = append(h.values, v)
}

func (h *History) Points() int {
	h.l.RLock()
	defer h.l.RUnlock()

	return len(h.times)
}

func (h *History) Last() (time.Time, float64, bool) {
	h.l.RLock()
	defer h.l.RUnlock()

	if len(h.times) == 0 {
		return time.Time{}, 0, false
	}
	return h.times[len(h.times)-1], h.values[len(h.values)-1], true
}

// Chart renders the equity curve to a PNG under dir and returns the file
// path.
func (h *History) Chart(dir string) (string, error) {
	h.l.RLock()
	defer h.l.RUnlock()

	if len(h.times) == 0 {
		return "", fmt.Errorf("no account value recorded yet")
	}

	xAxisValue := make([]string, 0, len(h.times))
	for _, t := range h.times {
		xAxisValue = append(xAxisValue, t.Format("15:04"))
	}

	p, err := charts.LineRender(
		[][]float64{append([]float64(nil), h.values...)},
		charts.TitleTextOptionFunc("Account Value"),
		charts.LegendLabelsOptionFunc([]string{"Account Value"}, "128"),
		charts.XAxisDataOptionFunc(xAxisValue),
		func(opt *charts.ChartOption) {
			opt.Theme = "dark"
			opt.LineStrokeWidth = 1
			opt.FillArea = true
			opt.XAxis.SplitNumber = 1
			opt.SymbolShow = charts.FalseFlag()
			opt.ValueFormatter = func(f float64) string { return fmt.Sprintf("%.2f", f) }
		},
	)
	if err != nil {
		return "", fmt.Errorf("render equity chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return "", fmt.Errorf("encode equity chart: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	imgFilePath := filepath.Join(dir, fmt.Sprintf("equity-%d.png", time.Now().UTC().UnixMilli()))
	if err := os.WriteFile(imgFilePath, buf, 0644); err != nil {
		return "", err
	}

	return imgFilePath, nil
}
