// Package pgerrors классифицирует ошибки PostgreSQL независимо от драйвера (lib/pq или pgx).
package pgerrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// SQLSTATE коды, которые обрабатываются сервисом
const (
	UniqueViolation      = "23505"
	ExclusionViolation   = "23P01"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
)

// Code возвращает SQLSTATE код ошибки или пустую строку, если ошибка не от PostgreSQL
func Code(err error) string {
	if err == nil {
		return ""
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// IsUniqueViolation нарушение уникального индекса
func IsUniqueViolation(err error) bool {
	return Code(err) == UniqueViolation
}

// IsExclusionViolation нарушение exclusion constraint (пересечение интервалов записей)
func IsExclusionViolation(err error) bool {
	return Code(err) == ExclusionViolation
}

// IsRetryable ошибки сериализации и дедлоки, после которых транзакцию можно повторить целиком
func IsRetryable(err error) bool {
	code := Code(err)
	return code == SerializationFailure || code == DeadlockDetected
}
