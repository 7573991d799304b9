package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ZapLoggerAdapter adapts zap.Logger to cron's Logger interface
type ZapLoggerAdapter struct {
	logger *zap.Logger
}

// NewZapLoggerAdapter creates a cron logger writing to logger
func NewZapLoggerAdapter(logger *zap.Logger) cron.Logger {
	return &ZapLoggerAdapter{logger: logger}
}

// Info logs routine scheduler activity at debug level, cron is chatty
func (z *ZapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	z.logger.Debug(msg, convertKeyvalsToFields(keysAndValues...)...)
}

// Error logs a scheduler error, including recovered job panics
func (z *ZapLoggerAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := append(convertKeyvalsToFields(keysAndValues...), zap.Error(err))
	z.logger.Error(msg, fields...)
}

// convertKeyvalsToFields converts cron's key1, val1, key2, val2 pairs to zap fields
func convertKeyvalsToFields(keyvals ...interface{}) []zap.Field {
	if len(keyvals)%2 != 0 {
		keyvals = keyvals[:len(keyvals)-1]
	}

	fields := make([]zap.Field, 0, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keyvals[i+1]))
	}
	return fields
}
