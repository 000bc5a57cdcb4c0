// Package telemetry обеспечивает наблюдаемость утилит.
//
// Включает:
//   - logging.go — structured logging через slog
//   - metrics.go — Prometheus метрики и HTTP-эндпоинт /metrics
//
// Логи пишутся в stderr, чтобы stdout оставался чистым для
// консольного вывода утилит (" [x] Sent ...", " [x] Received ...").
package telemetry
