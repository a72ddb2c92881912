package service

import "fmt"

// ShapeError indica que o payload do backend não tem o formato que o mapeamento espera
type ShapeError struct {
	Field  string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected backend shape at %s: %s", e.Field, e.Reason)
}

func shapeErr(field, format string, args ...any) *ShapeError {
	return &ShapeError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
