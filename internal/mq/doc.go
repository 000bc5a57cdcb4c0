// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Структура:
//   - connection.go — управление соединением с RabbitMQ (reconnect, graceful shutdown)
//   - topology.go   — объявление exchanges, queues, bindings
//   - publisher.go  — публикация текстовых сообщений
//   - consumer.go   — потребление сообщений из очередей
//   - client.go     — сессия для утилит: всё вышеперечисленное за одним типом
//
// Очереди:
//   - task_queue   — durable рабочая очередь, persistent сообщения, manual ack
//
// Exchanges:
//   - "" (default) — публикация задач напрямую в task_queue
//   - direct_logs  — логи, routing key = severity
package mq
