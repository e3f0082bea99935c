package observe

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/reactor/pkg/reactive"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "reactor").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "reactor",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is an observer recording runtime events as Prometheus metrics.
type Metrics struct {
	flushes         prometheus.Counter
	flushPasses     prometheus.Histogram
	flushDuration   prometheus.Histogram
	effectRuns      prometheus.Counter
	effectErrors    *prometheus.CounterVec
	cycles          prometheus.Counter
	scopeDisposals  prometheus.Counter
	resourceLoads   *prometheus.CounterVec
	resourceLatency prometheus.Histogram
	staleDiscards   prometheus.Counter
	dispatches      prometheus.Counter
	completions     *prometheus.CounterVec
	listOps         prometheus.Counter
}

// Prometheus creates an observer that registers its metrics with the
// configured registry. Create at most one per registry.
//
// Metrics collected:
//   - reactor_flushes_total: Counter of propagation flushes
//   - reactor_flush_passes: Histogram of passes per flush
//   - reactor_flush_duration_seconds: Histogram of flush duration
//   - reactor_effect_runs_total: Counter of effect executions
//   - reactor_effect_errors_total: Counter of effect runs that failed, by error type
//   - reactor_propagation_cycles_total: Counter of flushes aborted by the iteration bound
//   - reactor_scope_disposals_total: Counter of disposed scopes
//   - reactor_resource_loads_total: Counter of applied resource loads by result
//   - reactor_resource_load_duration_seconds: Histogram of resource load latency
//   - reactor_resource_stale_discards_total: Counter of discarded stale loads
//   - reactor_action_dispatches_total: Counter of action dispatches
//   - reactor_action_completions_total: Counter of action completions by result
//   - reactor_list_ops_total: Counter of keyed list operations
//
// Example:
//
//	rt := reactive.New(reactive.WithObserver(observe.Prometheus(
//	    observe.WithNamespace("myapp"),
//	)))
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}
	histogram := func(name, help string, buckets []float64) prometheus.Histogram {
		return factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
			Buckets:     buckets,
		})
	}

	return &Metrics{
		flushes:         counter("flushes_total", "Total number of propagation flushes"),
		flushPasses:     histogram("flush_passes", "Passes needed for a flush to settle", []float64{1, 2, 3, 5, 10, 25, 50, 100}),
		flushDuration:   histogram("flush_duration_seconds", "Flush duration in seconds", config.Buckets),
		effectRuns:      counter("effect_runs_total", "Total number of effect executions"),
		effectErrors:    counterVec("effect_errors_total", "Total number of failed effect executions", "error_type"),
		cycles:          counter("propagation_cycles_total", "Total number of flushes aborted by the iteration bound"),
		scopeDisposals:  counter("scope_disposals_total", "Total number of disposed scopes"),
		resourceLoads:   counterVec("resource_loads_total", "Total number of applied resource loads", "result"),
		resourceLatency: histogram("resource_load_duration_seconds", "Resource load latency in seconds", config.Buckets),
		staleDiscards:   counter("resource_stale_discards_total", "Total number of discarded stale resource loads"),
		dispatches:      counter("action_dispatches_total", "Total number of action dispatches"),
		completions:     counterVec("action_completions_total", "Total number of action completions", "result"),
		listOps:         counter("list_ops_total", "Total number of keyed list operations"),
	}
}

// Observe implements reactive.Observer.
func (m *Metrics) Observe(e reactive.Event) {
	switch e.Kind {
	case reactive.EventFlush:
		m.flushes.Inc()
		m.flushPasses.Observe(float64(e.Passes))
		m.flushDuration.Observe(e.Duration().Seconds())
	case reactive.EventEffectRun:
		m.effectRuns.Inc()
		if e.Err != nil {
			m.effectErrors.WithLabelValues(categorizeError(e.Err)).Inc()
		}
	case reactive.EventCycle:
		m.cycles.Inc()
	case reactive.EventScopeDispose:
		m.scopeDisposals.Inc()
	case reactive.EventResourceLoad:
		m.resourceLoads.WithLabelValues(result(e.Err)).Inc()
		m.resourceLatency.Observe(e.Duration().Seconds())
	case reactive.EventResourceDiscard:
		m.staleDiscards.Inc()
	case reactive.EventActionDispatch:
		m.dispatches.Inc()
	case reactive.EventActionComplete:
		m.completions.WithLabelValues(result(e.Err)).Inc()
	case reactive.EventListReconcile:
		m.listOps.Add(float64(e.Effects))
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// categorizeError maps an error to a low-cardinality label.
func categorizeError(err error) string {
	var re *reactive.Error
	switch {
	case errors.Is(err, reactive.ErrUseAfterDispose):
		return "use_after_dispose"
	case errors.Is(err, reactive.ErrPropagationCycle):
		return "propagation_cycle"
	case errors.As(err, &re) && re.Code != "":
		return re.Code
	default:
		return "internal"
	}
}
