package devtools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vango-dev/reactor/pkg/reactive"
)

// StatsTimeout bounds how long /stats waits for the runtime goroutine.
const StatsTimeout = 2 * time.Second

// Inspector serves runtime state over HTTP.
type Inspector struct {
	rt       *reactive.Runtime
	hub      *Hub
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithGatherer exposes g on /metrics. Without it /metrics is not mounted.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(i *Inspector) {
		i.gatherer = g
	}
}

// WithLogger sets the logger for server lifecycle messages.
func WithLogger(l *slog.Logger) Option {
	return func(i *Inspector) {
		if l != nil {
			i.logger = l
		}
	}
}

// NewInspector creates an inspector for rt. The runtime must be driven by
// Run (or Settle) for /stats to answer, since counters are read on the
// runtime goroutine.
func NewInspector(rt *reactive.Runtime, hub *Hub, opts ...Option) *Inspector {
	i := &Inspector{
		rt:     rt,
		hub:    hub,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.logger = i.logger.With("component", "inspector")
	return i
}

// Router returns the inspector routes.
func (i *Inspector) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Get("/stats", i.handleStats)
	r.Get("/events", i.hub.HandleWebSocket)
	r.Get("/events/recent", i.handleRecent)
	if i.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(i.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Stats reads runtime counters on the runtime goroutine.
func (i *Inspector) Stats(ctx context.Context) (reactive.Stats, error) {
	ch := make(chan reactive.Stats, 1)
	i.rt.Dispatch(func() {
		ch <- i.rt.Stats()
	})
	select {
	case s := <-ch:
		return s, nil
	case <-ctx.Done():
		return reactive.Stats{}, ctx.Err()
	}
}

func (i *Inspector) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), StatsTimeout)
	defer cancel()

	stats, err := i.Stats(ctx)
	if err != nil {
		http.Error(w, "runtime not responding", http.StatusServiceUnavailable)
		return
	}
	writeBody(w, r, stats)
}

func (i *Inspector) handleRecent(w http.ResponseWriter, r *http.Request) {
	writeBody(w, r, i.hub.Recent())
}

// ListenAndServe serves the inspector on addr until ctx is done. The hub is
// run alongside and closed on return.
func (i *Inspector) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           i.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go i.hub.Run(hubCtx)

	errCh := make(chan error, 1)
	go func() {
		i.logger.Info("inspector listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stopHub()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	i.logger.Info("inspector stopped")
	return nil
}

// MsgpackType is the media type that selects MessagePack responses, either
// through the Accept header or ?format=msgpack.
const MsgpackType = "application/msgpack"

// writeBody encodes v as MessagePack when the request asks for it and as
// JSON otherwise. Both encodings use the json field names.
func writeBody(w http.ResponseWriter, r *http.Request, v any) {
	if r.URL.Query().Get("format") != "msgpack" && !strings.Contains(r.Header.Get("Accept"), MsgpackType) {
		writeJSON(w, v)
		return
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", MsgpackType)
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
