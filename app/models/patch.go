package models

import (
	"encoding/json"
	"fmt"

	"github.com/shashiranjanraj/catalog/pkg/validate"
)

// Field is an optional patch value that remembers whether the key was sent
// at all and whether it was sent as null.
//
//	{}              → Set=false
//	{"name": null}  → Set=true, Null=true
//	{"name": "x"}   → Set=true, Value="x"
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Value returns a present, non-null Field.
func Value[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a Field explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// Present reports whether the field carries a value.
func (f Field[T]) Present() bool {
	return f.Set && !f.Null
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		var zero T
		f.Null, f.Value = true, zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

func nullMessage(field string) string {
	return fmt.Sprintf("The %s field may not be null.", field)
}

// checkRequired validates a field that may be omitted but never nulled.
func checkRequired[T any](errs map[string]string, name string, f Field[T], rules string) {
	switch {
	case !f.Set:
	case f.Null:
		errs[name] = nullMessage(name)
	default:
		if msg := validate.Var(name, f.Value, rules); msg != "" {
			errs[name] = msg
		}
	}
}

// NonNil returns s, or an empty slice when s is nil, so lists always
// serialise as [] rather than null.
func NonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
