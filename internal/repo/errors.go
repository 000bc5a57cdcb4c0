package repo

import "errors"

// Общие ошибки репозиториев.
var (
	// ErrAlreadyExists — запись уже существует (конфликт уникальности).
	ErrAlreadyExists = errors.New("already exists")
)
