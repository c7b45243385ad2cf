package middleware

import (
	"context"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RequestLogger логгер access log
type RequestLogger interface {
	Request(requestID, method, path string, status int, duration time.Duration)
}

// Limiter решает, можно ли пропустить еще один запрос с ключом key
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
