package models

import "time"

// Timestamps holds standard creation/update columns.
type Timestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
