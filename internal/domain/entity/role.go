package entity

import "time"

// Role rol asignable a usuarios. Rol es único.
type Role struct {
	ID        int64
	Rol       string
	CreatedAt time.Time
}
