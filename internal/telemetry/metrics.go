package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MessagesPublished — опубликованные сообщения.
	MessagesPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rabbitwork_messages_published_total",
		Help: "Total number of messages published to RabbitMQ.",
	}, []string{"exchange", "routing_key"})

	// MessagesConsumed — полученные сообщения.
	MessagesConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rabbitwork_messages_consumed_total",
		Help: "Total number of messages consumed from RabbitMQ.",
	}, []string{"queue", "routing_key"})

	// HandlerErrors — ошибки обработчиков сообщений.
	HandlerErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rabbitwork_handler_errors_total",
		Help: "Total number of message handler failures.",
	}, []string{"queue"})

	// HandlerDuration — длительность обработки одного сообщения.
	HandlerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rabbitwork_handler_duration_seconds",
		Help:    "Time spent handling a single delivery.",
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"queue"})
)

// MetricsHandler возвращает mux с /healthz и /metrics.
func MetricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// ServeMetrics поднимает HTTP-сервер метрик и держит его до отмены ctx.
// Пустой addr — метрики выключены, функция сразу возвращает nil.
func ServeMetrics(ctx context.Context, addr string, logger *slog.Logger) error {
	if addr == "" {
		return nil
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           MetricsHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
