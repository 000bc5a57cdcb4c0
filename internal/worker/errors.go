package worker

import "errors"

// Ошибки воркера.
var (
	// ErrInterrupted — работа над задачей прервана остановкой воркера.
	// Задача будет возвращена в очередь (nack с requeue).
	ErrInterrupted = errors.New("task interrupted")
)
