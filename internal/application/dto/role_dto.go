package dto

import "time"

// RoleRequest body para POST /roles y PUT /roles/{id} (reemplazo completo).
type RoleRequest struct {
	Rol *string `json:"rol" validate:"required,min=1,max=50"`
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID        int64     `json:"id"`
	Rol       string    `json:"rol"`
	CreatedAt time.Time `json:"created_at"`
}
