package entity

import "time"

// User representa un usuario del sistema.
// RoleID es una referencia lógica a Role (sin FK ni cascada).
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt; nunca texto plano
	RoleID       int64
	CreatedAt    time.Time
}
