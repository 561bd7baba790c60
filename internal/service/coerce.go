package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var errNotANumber = errors.New("not a number")

// FieldError reports a form field whose value cannot be used.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: invalid value %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// ParseOptionalFloat converts form text to a number. Blank text is absent (nil).
func ParseOptionalFloat(field, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &FieldError{Field: field, Value: s, Err: errNotANumber}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, &FieldError{Field: field, Value: s, Err: errNotANumber}
	}
	return &v, nil
}

// ParseOptionalInt converts form text to an integer. Blank text is absent (nil).
func ParseOptionalInt(field, s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, &FieldError{Field: field, Value: s, Err: errNotANumber}
	}
	return &v, nil
}
