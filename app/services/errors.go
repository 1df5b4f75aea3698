// Package services holds the catalog use cases: CRUD over categories,
// products and orders, the referential integrity rules that keep their
// references consistent, order pricing and the dashboard report.
package services

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// NotFoundError names the entity kind and every id that does not exist.
type NotFoundError struct {
	Entity string
	IDs    []string
}

func notFound(entity string, ids ...string) *NotFoundError {
	return &NotFoundError{Entity: entity, IDs: ids}
}

func (e *NotFoundError) Error() string {
	if len(e.IDs) == 1 {
		return fmt.Sprintf("%s with id %s does not exist", e.Entity, e.IDs[0])
	}
	return fmt.Sprintf("%ss with ids [%s] do not exist", e.Entity, strings.Join(e.IDs, ", "))
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError carries field → message for every rejected input field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(slices.Sorted(maps.Keys(e.Fields)), ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// invalid returns a *ValidationError for errs, or nil when errs is empty.
func invalid(errs map[string]string) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}
