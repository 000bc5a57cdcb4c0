package mq

import (
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
)

type declaredExchange struct {
	name    string
	kind    string
	durable bool
}

type declaredQueue struct {
	name       string
	durable    bool
	autoDelete bool
	exclusive  bool
}

type binding struct {
	queue    string
	key      string
	exchange string
}

// fakeDeclarer записывает вызовы объявления топологии.
type fakeDeclarer struct {
	exchanges []declaredExchange
	queues    []declaredQueue
	bindings  []binding

	generatedName string
	bindErr       error
}

func (f *fakeDeclarer) ExchangeDeclare(name, kind string, durable, _, _, _ bool, _ amqp.Table) error {
	f.exchanges = append(f.exchanges, declaredExchange{name: name, kind: kind, durable: durable})
	return nil
}

func (f *fakeDeclarer) QueueDeclare(name string, durable, autoDelete, exclusive, _ bool, _ amqp.Table) (amqp.Queue, error) {
	f.queues = append(f.queues, declaredQueue{name: name, durable: durable, autoDelete: autoDelete, exclusive: exclusive})
	if name == "" {
		name = f.generatedName
	}
	return amqp.Queue{Name: name}, nil
}

func (f *fakeDeclarer) QueueBind(name, key, exchange string, _ bool, _ amqp.Table) error {
	if f.bindErr != nil {
		return f.bindErr
	}
	f.bindings = append(f.bindings, binding{queue: name, key: key, exchange: exchange})
	return nil
}

func TestDeclareTaskQueue(t *testing.T) {
	ch := &fakeDeclarer{}

	queue, err := DeclareTaskQueue(ch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if queue != QueueTasks {
		t.Errorf("expected %s, got %s", QueueTasks, queue)
	}
	if len(ch.queues) != 1 {
		t.Fatalf("expected 1 queue declared, got %d", len(ch.queues))
	}

	q := ch.queues[0]
	if q.name != "task_queue" || !q.durable || q.autoDelete || q.exclusive {
		t.Errorf("task_queue should be durable, non-exclusive, not auto-deleted: %+v", q)
	}
}

func TestSetupLogsSubscription(t *testing.T) {
	ch := &fakeDeclarer{generatedName: "amq.gen-abc"}

	queue, err := SetupLogsSubscription(ch, []string{"warning", "error"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if queue != "amq.gen-abc" {
		t.Errorf("expected server-named queue, got %s", queue)
	}

	if len(ch.exchanges) != 1 || ch.exchanges[0].name != "direct_logs" || ch.exchanges[0].kind != "direct" {
		t.Errorf("expected direct_logs direct exchange, got %+v", ch.exchanges)
	}

	if len(ch.queues) != 1 {
		t.Fatalf("expected 1 queue declared, got %d", len(ch.queues))
	}
	if q := ch.queues[0]; q.name != "" || !q.exclusive || !q.autoDelete || q.durable {
		t.Errorf("logs queue should be server-named, exclusive, auto-deleted: %+v", q)
	}

	want := []binding{
		{queue: "amq.gen-abc", key: "warning", exchange: "direct_logs"},
		{queue: "amq.gen-abc", key: "error", exchange: "direct_logs"},
	}
	if len(ch.bindings) != len(want) {
		t.Fatalf("expected %d bindings, got %d", len(want), len(ch.bindings))
	}
	for i, b := range want {
		if ch.bindings[i] != b {
			t.Errorf("binding %d: expected %+v, got %+v", i, b, ch.bindings[i])
		}
	}
}

func TestBindSeverities_Error(t *testing.T) {
	bindErr := errors.New("access refused")
	ch := &fakeDeclarer{bindErr: bindErr}

	err := BindSeverities(ch, "q", []string{"info"})
	if !errors.Is(err, bindErr) {
		t.Errorf("expected wrapped bind error, got %v", err)
	}
}
