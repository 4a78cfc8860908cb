package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"` // solo en errores de validación (422)
}

// FieldError campo que no cumplió una regla de validación.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// MessageResponse respuesta con un mensaje informativo.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse salida de GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
