package tui

import (
	"fmt"

	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"
)

type TuiLogger struct {
	logContent *tview.TextView
}

func NewTuiLogger() *TuiLogger {
	logContent := tview.NewTextView()
	logContent.SetDynamicColors(true).SetScrollable(true)
	logContent.SetMaxLines(200).SetTitle("Log").SetBorder(true)
	return &TuiLogger{
		logContent: logContent,
	}
}

func (l *TuiLogger) Item() *tview.TextView {
	return l.logContent
}

func (l *TuiLogger) Fire(entry *logrus.Entry) error {
	var color string
	switch entry.Level {
	case logrus.InfoLevel:
		color = "blue"
	case logrus.WarnLevel:
		color = "yellow"
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		color = "red"
	default:
		color = "green"
	}
	msg := fmt.Sprintf("[%s][%s][white] %s\n", color, entry.Time.Format("2006-01-02 15:04:05.000"), entry.Message)

	l.logContent.SetText(l.logContent.GetText(false) + msg)

	return nil
}

func (l *TuiLogger) Levels() []logrus.Level {
	return logrus.AllLevels
}
