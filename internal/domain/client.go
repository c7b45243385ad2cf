package domain

import "time"

// Client клиент салона, телефон является естественным ключом
type Client struct {
	ID        string
	Name      string
	Phone     string
	Email     *string
	CreatedAt time.Time
}
