package models

// FieldError describes a single failed validation rule on a request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
