package pagewindow

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	strategyFilter = "filter"
	strategyQuery  = "query"
	strategySearch = "search"

	operationCount    = "count"
	operationItems    = "items"
	operationAllItems = "all_items"
	operationFetch    = "fetch"
)

var _logger logrus.FieldLogger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

// SetLogger sets the logger used by paginators that were not given one with WithLogger.
// A nil logger discards everything, which is the default.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = newDiscardLogger()
	}

	_logger = l
}

// Metrics instruments backend calls made by the backend-driven paginators.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg. A nil reg skips
// registration, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pagewindow",
			Name:      "backend_calls_total",
			Help:      "Number of backend calls made by paginators.",
		}, []string{"strategy", "operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pagewindow",
			Name:      "backend_call_duration_seconds",
			Help:      "Duration of backend calls made by paginators.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"strategy", "operation"}),
	}

	if reg == nil {
		return m, nil
	}

	var err error
	if m.calls, err = register(reg, m.calls); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}

	return m, nil
}

// register adopts the collector already registered under the same descriptor, so that
// several NewMetrics calls on one registry share series.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return c, fmt.Errorf("cannot register paginator metrics: %w", err)
}

func (m *Metrics) observe(strategy, operation string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	m.calls.WithLabelValues(strategy, operation, outcome).Inc()
	m.duration.WithLabelValues(strategy, operation).Observe(elapsed.Seconds())
}

// instrumentation is shared by the backend-driven paginators.
type instrumentation struct {
	strategy string
	logger   logrus.FieldLogger
	metrics  *Metrics
}

func (i instrumentation) log() logrus.FieldLogger {
	if i.logger != nil {
		return i.logger
	}

	return _logger
}

// call runs a single backend call, logging and measuring it. The error is returned
// unchanged.
func (i instrumentation) call(operation string, w Window, fn func() error) error {
	entry := i.log().WithFields(logrus.Fields{
		"strategy":  i.strategy,
		"operation": operation,
		"page":      w.Page(),
		"per_page":  w.PerPage(),
		"offset":    w.Offset(),
	})
	entry.Debug("paginator backend call")

	started := time.Now()
	err := fn()
	elapsed := time.Since(started)
	i.metrics.observe(i.strategy, operation, elapsed, err)

	if err != nil {
		entry.WithError(err).Warn("paginator backend call failed")
		return err
	}
	entry.WithField("elapsed", elapsed).Debug("paginator backend call done")

	return nil
}
