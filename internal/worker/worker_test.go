package worker

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"strings"
	"time"

	"github.com/shaiso/rabbitwork/internal/mq"
	"github.com/shaiso/rabbitwork/internal/telemetry"
)

func newTestWorker(out io.Writer) *Worker {
	return New(Config{
		Out:  out,
		Unit: time.Millisecond,
	})
}

func TestNew_Defaults(t *testing.T) {
	w := New(Config{})

	if w.Prefetch() != 1 {
		t.Errorf("expected prefetch 1, got %d", w.Prefetch())
	}
	if w.unit != time.Second {
		t.Errorf("expected unit 1s, got %v", w.unit)
	}
	if w.out == nil {
		t.Error("out should default to stdout")
	}
}

func TestWorker_Handle(t *testing.T) {
	var out bytes.Buffer
	w := newTestWorker(&out)

	start := time.Now()
	err := w.Handle(context.Background(), &mq.Delivery{Body: []byte("Third message...")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if elapsed := time.Since(start); elapsed < 3*time.Millisecond {
		t.Errorf("expected at least 3ms of work, got %v", elapsed)
	}

	want := " [x] Received Third message...\n [x] Done\n"
	if out.String() != want {
		t.Errorf("expected output %q, got %q", want, out.String())
	}
}

func TestWorker_Handle_NoDots(t *testing.T) {
	var out bytes.Buffer
	w := newTestWorker(&out)

	if err := w.Handle(context.Background(), &mq.Delivery{Body: []byte("Hello World!")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := " [x] Received Hello World!\n [x] Done\n"
	if out.String() != want {
		t.Errorf("expected output %q, got %q", want, out.String())
	}
}

func TestWorker_Handle_Interrupted(t *testing.T) {
	var out bytes.Buffer
	w := New(Config{
		Out:  &out,
		Unit: time.Hour,
	})

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	ctx, cancel := context.WithTimeout(telemetry.WithLogger(context.Background(), logger), 10*time.Millisecond)
	defer cancel()

	err := w.Handle(ctx, &mq.Delivery{Body: []byte("long.")})
	if !errors.Is(err, ErrInterrupted) {
		t.Fatalf("expected ErrInterrupted, got %v", err)
	}

	if out.String() != " [x] Received long.\n" {
		t.Errorf("Done must not be printed for interrupted task, got %q", out.String())
	}
	if !strings.Contains(logs.String(), "task interrupted") {
		t.Errorf("expected warning via context logger, got %q", logs.String())
	}
}
