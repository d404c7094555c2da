package reporting

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-activity/pkg/activity"
	"github.com/goliatone/go-activity/pkg/interfaces/logger"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type entry struct {
	msg    string
	fields map[string]any
}

type captureLogger struct {
	mu      sync.Mutex
	entries []entry
}

func (l *captureLogger) record(msg string, fields []logger.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	l.entries = append(l.entries, entry{msg: msg, fields: m})
}

func (l *captureLogger) With(...logger.Field) logger.Logger       { return l }
func (l *captureLogger) Debug(msg string, fields ...logger.Field) { l.record(msg, fields) }
func (l *captureLogger) Info(msg string, fields ...logger.Field)  { l.record(msg, fields) }
func (l *captureLogger) Warn(msg string, fields ...logger.Field)  { l.record(msg, fields) }
func (l *captureLogger) Error(msg string, fields ...logger.Field) { l.record(msg, fields) }

func failure(stage activity.Stage) activity.FailureInfo {
	return activity.FailureInfo{
		Stage: stage,
		Index: 2,
		Event: activity.Event{App: "files", Type: "shared", AffectedUser: "alice@example.com"},
	}
}

func TestLoggerReporterMasksUser(t *testing.T) {
	lgr := &captureLogger{}
	rep := NewLoggerReporter(lgr, 0)
	rep.Report(context.Background(), errors.New("boom"), failure(activity.StageReceive))

	if len(lgr.entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(lgr.entries))
	}
	fields := lgr.entries[0].fields
	if fields["stage"] != "receive" || fields["index"] != 2 || fields["app"] != "files" {
		t.Fatalf("unexpected fields %+v", fields)
	}
	user, _ := fields["affected_user"].(string)
	if user == "alice@example.com" || !strings.HasPrefix(user, "al") {
		t.Fatalf("expected masked user, got %q", user)
	}
}

func TestLoggerReporterIncludesPanicStack(t *testing.T) {
	lgr := &captureLogger{}
	rep := NewLoggerReporter(lgr, 0)
	err := &activity.DeliveryError{Stage: activity.StageResolve, Err: &activity.PanicError{Value: "x", Stack: []byte("trace")}}
	rep.Report(context.Background(), err, failure(activity.StageResolve))

	if lgr.entries[0].fields["stack"] != "trace" {
		t.Fatalf("expected stack field, got %+v", lgr.entries[0].fields)
	}
}

func TestLoggerReporterRateLimits(t *testing.T) {
	lgr := &captureLogger{}
	rep := NewLoggerReporter(lgr, 1)
	for i := 0; i < 5; i++ {
		rep.Report(context.Background(), errors.New("boom"), failure(activity.StageReceive))
	}
	if len(lgr.entries) != 1 {
		t.Fatalf("expected 1 logged report, got %d", len(lgr.entries))
	}
	if rep.Dropped() != 4 {
		t.Fatalf("expected 4 dropped, got %d", rep.Dropped())
	}
}

func TestMaskUser(t *testing.T) {
	if MaskUser("") != "" {
		t.Fatalf("empty value should stay empty")
	}
	if got := MaskUser("abcdefgh"); got == "abcdefgh" {
		t.Fatalf("expected masked value, got %q", got)
	}
}

func TestPrometheusReporterCounts(t *testing.T) {
	p := NewPrometheusReporter("test")
	p.Report(context.Background(), errors.New("x"), failure(activity.StageReceive))
	p.Report(context.Background(), errors.New("x"), failure(activity.StageReceive))
	p.Report(context.Background(), errors.New("x"), failure(activity.StageResolve))

	if got := testutil.ToFloat64(p.failures.WithLabelValues("receive")); got != 2 {
		t.Fatalf("expected 2 receive failures, got %v", got)
	}
	if got := testutil.ToFloat64(p.failures.WithLabelValues("resolve")); got != 1 {
		t.Fatalf("expected 1 resolve failure, got %v", got)
	}
}

func TestPrometheusReporterAsManagerMetrics(t *testing.T) {
	p := NewPrometheusReporter("")
	mgr := activity.New(activity.WithMetrics(p), activity.WithReporter(p))
	mgr.Register(activity.Static(activity.SubscriberFunc(func(context.Context, activity.Event) error { return nil })))
	mgr.Register(func() (activity.Subscriber, error) { return nil, nil })
	mgr.Register(activity.Static(activity.SubscriberFunc(func(context.Context, activity.Event) error { return errors.New("down") })))

	mgr.Publish(context.Background(), activity.Event{App: "a", Type: "t", AffectedUser: "u"})

	if testutil.ToFloat64(p.published) != 1 || testutil.ToFloat64(p.delivered) != 1 || testutil.ToFloat64(p.skipped) != 1 {
		t.Fatalf("unexpected counters")
	}

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	if !strings.Contains(body, `activity_delivery_failures_total{stage="receive"} 1`) {
		t.Fatalf("metrics output missing failure counter:\n%s", body)
	}
}
