package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quant-board-store/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// GormLogger forwards GORM's logging to the application logger.
type GormLogger struct {
	log           *logger.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger builds a GormLogger. level is one of "silent", "error",
// "warn" or "info"; threshold is a duration string, empty for the default.
func NewGormLogger(log *logger.Logger, level, threshold string) (*GormLogger, error) {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}

	slow := defaultSlowQueryThreshold
	if threshold != "" {
		slow, err = time.ParseDuration(threshold)
		if err != nil {
			return nil, fmt.Errorf("invalid slow_query_threshold %q: %w", threshold, err)
		}
	}

	if log == nil {
		log = logger.NewNop()
	}
	return &GormLogger{log: log, level: lvl, slowThreshold: slow}, nil
}

func parseLogLevel(level string) (gormlogger.LogLevel, error) {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent, nil
	case "error":
		return gormlogger.Error, nil
	case "", "warn":
		return gormlogger.Warn, nil
	case "info":
		return gormlogger.Info, nil
	default:
		return gormlogger.Silent, fmt.Errorf("invalid database log_level %q", level)
	}
}

// LogMode returns a copy of the logger at the given level.
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.InfoContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.WarnContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.ErrorContext(ctx, fmt.Sprintf(msg, data...))
	}
}

// Trace logs every executed statement according to the level: failures at
// error, statements slower than the threshold at warn, the rest at debug.
// Record-not-found is an expected outcome of lookups and is not logged.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.log.ErrorContext(ctx, "SQL execution failed",
			logger.ErrorField(err),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			logger.StringField("sql", sql))
	case elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.log.WarnContext(ctx, "Slow query detected",
			zap.Duration("elapsed", elapsed),
			zap.Duration("threshold", l.slowThreshold),
			zap.Int64("rows", rows),
			logger.StringField("sql", sql))
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.log.DebugContext(ctx, "SQL executed",
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			logger.StringField("sql", sql))
	}
}
