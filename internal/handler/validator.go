package handler

import (
    "github.com/go-playground/validator/v10"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface so request DTOs can carry `validate` tags.
type RequestValidator struct {
    validate *validator.Validate
}

// NewRequestValidator builds the shared validator instance.
func NewRequestValidator() *RequestValidator {
    return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i interface{}) error {
    return v.validate.Struct(i)
}
