package events

import "errors"

var (
	// ErrMarshal возвращается, если событие не удалось сериализовать
	ErrMarshal = errors.New("events: failed to marshal event")

	// ErrPublish возвращается при ошибке записи в Kafka
	ErrPublish = errors.New("events: failed to publish event")
)
