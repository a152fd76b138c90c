package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound   = errors.New("no project found")
	ErrValidation = errors.New("projects validation failed")
	ErrStorage    = errors.New("storage failure")
)

// ValidationError lists the required fields that were missing on create.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f+" is required")
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
