package logger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/medibook/medibook-booking-gateway/internal/core/ports/out"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[37m"
)

var levelWeight = map[out.LogLevel]int{
	out.LogLevelDebug: 0,
	out.LogLevelInfo:  1,
	out.LogLevelWarn:  2,
	out.LogLevelError: 3,
}

// ConsoleLogger writes colorized event logs with the configured timezone.
// Debug lines are suppressed outside local environments.
type ConsoleLogger struct {
	defaultFields out.LogFields
	module        string
	location      *time.Location
	minLevel      out.LogLevel
}

func NewConsoleLogger(timezone string, debug bool) (*ConsoleLogger, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	minLevel := out.LogLevelInfo
	if debug {
		minLevel = out.LogLevelDebug
	}

	return &ConsoleLogger{
		defaultFields: make(out.LogFields),
		location:      loc,
		minLevel:      minLevel,
	}, nil
}

func (l *ConsoleLogger) WithFields(fields out.LogFields) out.LoggerPort {
	merged := make(out.LogFields, len(l.defaultFields)+len(fields))
	for k, v := range l.defaultFields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	return &ConsoleLogger{
		defaultFields: merged,
		module:        l.module,
		location:      l.location,
		minLevel:      l.minLevel,
	}
}

func (l *ConsoleLogger) WithModule(module string) out.LoggerPort {
	return &ConsoleLogger{
		defaultFields: l.defaultFields,
		module:        module,
		location:      l.location,
		minLevel:      l.minLevel,
	}
}

func (l *ConsoleLogger) Debug(event string, fields out.LogFields) {
	l.log(out.LogLevelDebug, event, fields)
}

func (l *ConsoleLogger) Info(event string, fields out.LogFields) {
	l.log(out.LogLevelInfo, event, fields)
}

func (l *ConsoleLogger) Warn(event string, fields out.LogFields) {
	l.log(out.LogLevelWarn, event, fields)
}

func (l *ConsoleLogger) Error(event string, fields out.LogFields) {
	l.log(out.LogLevelError, event, fields)
}

func (l *ConsoleLogger) log(level out.LogLevel, event string, fields out.LogFields) {
	if levelWeight[level] < levelWeight[l.minLevel] {
		return
	}

	module := l.module
	if module == "" {
		module = "unknown"
	}

	merged := make(out.LogFields, len(l.defaultFields)+len(fields)+1)
	for k, v := range l.defaultFields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	merged["event"] = event

	timestamp := time.Now().In(l.location).Format("2006-01-02 15:04:05.000")

	var levelColor string
	switch level {
	case out.LogLevelDebug:
		levelColor = colorGray
	case out.LogLevelInfo:
		levelColor = colorGreen
	case out.LogLevelWarn:
		levelColor = colorYellow
	case out.LogLevelError:
		levelColor = colorRed
	}

	fieldsBytes, _ := json.Marshal(merged)

	fmt.Printf("%s[%s]%s %s[%s]%s %s[%s]%s %s\n",
		colorGray, timestamp, colorReset,
		levelColor, level, colorReset,
		colorCyan, module, colorReset,
		string(fieldsBytes),
	)
}
