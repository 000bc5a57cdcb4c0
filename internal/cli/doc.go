// Package cli реализует утилиты командной строки для RabbitMQ.
//
// # Обзор
//
// Каждая утилита — отдельная cobra-команда, которую запускает свой
// бинарник из cmd/:
//
//   - new-task            — задача в durable очередь task_queue
//   - worker              — потребитель task_queue (prefetch 1, manual ack)
//   - emit-log-direct     — сообщение в direct_logs с routing key = severity
//   - receive-logs-direct — подписка на direct_logs по списку severities
//
// Все утилиты следуют одной схеме: соединение и канал, объявление
// топологии, одна публикация или один цикл получения, освобождение
// ресурсов на любом пути выхода.
//
// # Ключевые компоненты
//
// ## Session
//
// Интерфейс соединения с брокером (реализация — *mq.Client).
// Команды получают его через Deps.Open, что позволяет тестировать
// их без брокера.
//
// ## Output
//
// Консольный вывод: строки " [x] Sent ..." / " [x] Received ..." в stdout,
// usage и ошибки в stderr. Логи (slog) также идут в stderr.
//
// ## Execute
//
// Запуск команды и перевод ошибки в код завершения: 0 — успех,
// 1 — ошибка или ErrUsage.
package cli
