package ormstore

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// zlog routes GORM's statement log into the request's zerolog logger.
type zlog struct {
	level logger.LogLevel
	slow  time.Duration
}

// NewLogger returns a GORM logger writing through zerolog. Statements slower
// than slow are logged as warnings; slow <= 0 disables that.
func NewLogger(level logger.LogLevel, slow time.Duration) logger.Interface {
	return &zlog{level: level, slow: slow}
}

func (l *zlog) LogMode(level logger.LogLevel) logger.Interface {
	n := *l
	n.level = level
	return &n
}

func (l *zlog) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Info {
		zerolog.Ctx(ctx).Info().Msgf(msg, data...)
	}
}

func (l *zlog) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Warn {
		zerolog.Ctx(ctx).Warn().Msgf(msg, data...)
	}
}

func (l *zlog) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Error {
		zerolog.Ctx(ctx).Error().Msgf(msg, data...)
	}
}

func (l *zlog) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	zl := zerolog.Ctx(ctx)
	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		stmt, rows := fc()
		zl.Error().Err(err).Str("sql", stmt).Int64("rows", rows).Dur("elapsed", elapsed).Msg("gorm query failed")
	case l.slow > 0 && elapsed > l.slow && l.level >= logger.Warn:
		stmt, rows := fc()
		zl.Warn().Str("sql", stmt).Int64("rows", rows).Dur("elapsed", elapsed).Msg("gorm slow query")
	case l.level >= logger.Info:
		stmt, rows := fc()
		zl.Debug().Str("sql", stmt).Int64("rows", rows).Dur("elapsed", elapsed).Msg("gorm query")
	}
}
