package mq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// Exchanges — имена обменников.
const (
	// ExchangeDefault — безымянный обменник брокера: routing key = имя очереди.
	ExchangeDefault    Exchange = ""
	ExchangeDirectLogs Exchange = "direct_logs"
)

// Queues — имена очередей.
const (
	QueueTasks Queue = "task_queue"

	// QueueServerNamed — пустое имя, брокер сгенерирует своё (amq.gen-...).
	QueueServerNamed Queue = ""
)

// Declarer — часть *amqp.Channel, нужная для объявления топологии.
type Declarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
}

// queueSpec — параметры объявления очереди.
type queueSpec struct {
	name       Queue
	durable    bool
	autoDelete bool
	exclusive  bool
}

var (
	// task_queue переживает рестарт брокера вместе с persistent-сообщениями.
	taskQueueSpec = queueSpec{name: QueueTasks, durable: true}

	// Временная очередь подписчика логов: удаляется вместе с соединением.
	logsQueueSpec = queueSpec{name: QueueServerNamed, autoDelete: true, exclusive: true}
)

func declareQueue(ch Declarer, q queueSpec) (Queue, error) {
	declared, err := ch.QueueDeclare(
		string(q.name), // name
		q.durable,      // durable
		q.autoDelete,   // delete when unused
		q.exclusive,    // exclusive
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return "", fmt.Errorf("declare queue %q: %w", q.name, err)
	}
	return Queue(declared.Name), nil
}

// DeclareTaskQueue объявляет durable очередь task_queue.
func DeclareTaskQueue(ch Declarer) (Queue, error) {
	return declareQueue(ch, taskQueueSpec)
}

// DeclareLogsExchange объявляет direct-обменник direct_logs.
func DeclareLogsExchange(ch Declarer) error {
	err := ch.ExchangeDeclare(
		string(ExchangeDirectLogs), // name
		amqp.ExchangeDirect,        // type
		false,                      // durable
		false,                      // auto-deleted
		false,                      // internal
		false,                      // no-wait
		nil,                        // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange %s: %w", ExchangeDirectLogs, err)
	}
	return nil
}

// DeclareLogsQueue объявляет эксклюзивную очередь с именем от брокера.
func DeclareLogsQueue(ch Declarer) (Queue, error) {
	return declareQueue(ch, logsQueueSpec)
}

// BindSeverities привязывает очередь к direct_logs по одному ключу
// на каждую severity, в переданном порядке.
func BindSeverities(ch Declarer, queue Queue, severities []string) error {
	for _, severity := range severities {
		err := ch.QueueBind(
			string(queue),              // queue name
			severity,                   // routing key
			string(ExchangeDirectLogs), // exchange
			false,                      // no-wait
			nil,                        // arguments
		)
		if err != nil {
			return fmt.Errorf("bind queue %s to %s with %q: %w", queue, ExchangeDirectLogs, severity, err)
		}
	}
	return nil
}

// SetupLogsSubscription объявляет обменник, временную очередь и биндинги.
// Возвращает имя очереди, выданное брокером.
func SetupLogsSubscription(ch Declarer, severities []string) (Queue, error) {
	if err := DeclareLogsExchange(ch); err != nil {
		return "", err
	}

	queue, err := DeclareLogsQueue(ch)
	if err != nil {
		return "", err
	}

	if err := BindSeverities(ch, queue, severities); err != nil {
		return "", err
	}

	return queue, nil
}

// TopologyInfo возвращает описание топологии для логирования.
func TopologyInfo() string {
	return `
  RabbitMQ topology:

    (default exchange)
    └── task_queue [routing: task_queue, durable]
            Publisher: new-task
            Consumer:  worker (prefetch 1, manual ack)

    direct_logs (direct)
    └── amq.gen-* [routing: <severity>..., exclusive]
            Publisher: emit-log-direct
            Consumer:  receive-logs-direct (auto ack)
  `
}
