// Package console logs activity events, mostly for local development.
package console

import (
	"context"

	"github.com/goliatone/go-activity/pkg/activity"
	"github.com/goliatone/go-activity/pkg/interfaces/logger"
)

// Subscriber writes one Info line per event.
type Subscriber struct {
	Logger logger.Logger
}

// Factory yields a Subscriber, or nil when no logger is configured.
func Factory(lgr logger.Logger) activity.Factory {
	return func() (activity.Subscriber, error) {
		if lgr == nil {
			return nil, nil
		}
		return &Subscriber{Logger: lgr}, nil
	}
}

func (s *Subscriber) Receive(_ context.Context, evt activity.Event) error {
	if s.Logger == nil {
		return nil
	}
	fields := []logger.Field{
		logger.F("app", evt.App),
		logger.F("type", evt.Type),
		logger.F("user", evt.AffectedUser),
		logger.F("subject", evt.Subject),
		logger.F("priority", evt.Priority.String()),
	}
	if evt.Author != "" {
		fields = append(fields, logger.F("author", evt.Author))
	}
	if !evt.Object.IsZero() {
		fields = append(fields, logger.F("object", evt.Object.Type+":"+evt.Object.ID))
	}
	s.Logger.Info("activity", fields...)
	return nil
}
