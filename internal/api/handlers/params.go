package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/salon-booking-service/pkg/types"
)

// ErrInvalidID идентификатор не в каноническом формате UUID
var ErrInvalidID = errors.New("handlers: invalid id")

// uuidLength длина канонической записи xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
const uuidLength = 36

// ValidateID проверяет, что id является UUID в канонической записи
func ValidateID(id string) error {
	if len(id) != uuidLength {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// OptionalID как OptionalString, но дополнительно проверяет формат UUID
func OptionalID(q url.Values, key string) (*string, error) {
	v := OptionalString(q, key)
	if v == nil {
		return nil, nil
	}
	if err := ValidateID(*v); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

// OptionalString значение query параметра или nil, если он пустой
func OptionalString(q url.Values, key string) *string {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	return &v
}

// OptionalTime разбирает query параметр как RFC3339 или как дату YYYY-MM-DD (полночь UTC)
func OptionalTime(q url.Values, key string) (*time.Time, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	if len(v) == len(types.DateFormat) {
		d, err := types.ParseDate(v)
		if err != nil {
			return nil, err
		}
		return &d, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
