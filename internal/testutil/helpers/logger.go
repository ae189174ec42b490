package helpers

import (
	"github.com/douhashi/triage/internal/logger"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewObservedLogger returns a logger that records entries at level and above.
// Entries go through the same sanitizer as the production logger.
func NewObservedLogger(level zapcore.Level) (logger.Logger, *observer.ObservedLogs) {
	core, recorded := observer.New(level)
	return logger.NewWithCore(core), recorded
}

// FieldValues collects the string values of key across recorded entries.
func FieldValues(recorded *observer.ObservedLogs, key string) []string {
	var values []string
	for _, entry := range recorded.All() {
		if v, ok := entry.ContextMap()[key].(string); ok {
			values = append(values, v)
		}
	}
	return values
}
