// Package logging routes decoder and batch diagnostics through ngaut/log.
package logging

import (
	"fmt"
	"strings"

	"github.com/ngaut/log"
)

var levels = []string{"debug", "info", "warn", "error"}

// Setup sets the global log level. An empty level means "info".
func Setup(level string) error {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = "info"
	}
	if level == "warning" {
		level = "warn"
	}
	for _, l := range levels {
		if l == level {
			log.SetLevelByString(level)
			return nil
		}
	}
	return fmt.Errorf("logging: unknown level %q (want one of %s)", level, strings.Join(levels, ", "))
}

// Logger satisfies mwm.Logger with a per-file prefix.
type Logger struct {
	Prefix string
}

func (l Logger) Debugf(format string, args ...interface{}) {
	log.Debugf(l.prefix()+format, args...)
}

func (l Logger) Warnf(format string, args ...interface{}) {
	log.Warnf(l.prefix()+format, args...)
}

func (l Logger) prefix() string {
	if l.Prefix == "" {
		return ""
	}
	return l.Prefix + ": "
}
