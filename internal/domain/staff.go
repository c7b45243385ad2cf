package domain

import "time"

// Staff мастер салона
type Staff struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
}
