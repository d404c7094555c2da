// Package reporting provides activity.ErrorReporter implementations.
package reporting

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/goliatone/go-activity/pkg/activity"
	"github.com/goliatone/go-activity/pkg/interfaces/logger"
	"golang.org/x/time/rate"
)

// LoggerReporter writes delivery failures to a logger, optionally rate
// limited. Reports over the limit are counted and dropped.
type LoggerReporter struct {
	logger  logger.Logger
	limiter *rate.Limiter
	dropped atomic.Int64
}

var _ activity.ErrorReporter = (*LoggerReporter)(nil)

// NewLoggerReporter builds a reporter. ratePerSec <= 0 disables limiting.
func NewLoggerReporter(lgr logger.Logger, ratePerSec int) *LoggerReporter {
	if lgr == nil {
		lgr = &logger.Nop{}
	}
	r := &LoggerReporter{logger: lgr}
	if ratePerSec > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec)
	}
	return r
}

// Report logs the failure at error level.
func (r *LoggerReporter) Report(_ context.Context, err error, info activity.FailureInfo) {
	if r.limiter != nil && !r.limiter.Allow() {
		r.dropped.Add(1)
		return
	}
	fields := []logger.Field{
		logger.F("stage", string(info.Stage)),
		logger.F("index", info.Index),
		logger.F("app", info.Event.App),
		logger.F("type", info.Event.Type),
		logger.F("affected_user", MaskUser(info.Event.AffectedUser)),
		logger.Err(err),
	}
	var perr *activity.PanicError
	if errors.As(err, &perr) {
		fields = append(fields, logger.F("stack", string(perr.Stack)))
	}
	r.logger.Error("activity delivery failed", fields...)
}

// Dropped returns how many reports were suppressed by the rate limit.
func (r *LoggerReporter) Dropped() int64 {
	return r.dropped.Load()
}
