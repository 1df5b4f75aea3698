// Package validate checks values against comma-separated rule tags.
//
// Supported rules:
//
//	required        value must not be zero/empty (whitespace-only strings count as empty)
//	nullable        if empty, skip the remaining rules
//	min=N           string: min char length | number: min value
//	max=N           string: max char length | number: max value
//	gt=N / gte=N    number bounds (NaN never satisfies a bound)
//	lt=N / lte=N    number bounds
//	finite          number must not be NaN or ±Inf
//	in=a|b|c        value must be one of the listed items
//	uuid            canonical UUID
//	date            YYYY-MM-DD
//
// Struct validates every field carrying a `validate` tag; Var validates a
// single value with the same rules.
//
//	type Input struct {
//	    Name  string  `json:"name"  validate:"required,max=50"`
//	    Price float64 `json:"price" validate:"gt=0"`
//	}
package validate

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Struct returns fieldName → message for every failing field of v.
// Field names come from the json tag. Only the first failing rule per field
// is reported.
func Struct(v any) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}
		if msg := check(jsonFieldName(field), rv.Field(i), tag); msg != "" {
			errs[jsonFieldName(field)] = msg
		}
	}

	return errs
}

// Var validates a single value and returns the first failure message, or "".
func Var(field string, v any, tag string) string {
	return check(field, reflect.ValueOf(v), tag)
}

// HasErrors reports whether errs is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func check(field string, v reflect.Value, tag string) string {
	rules := strings.Split(tag, ",")
	for _, r := range rules {
		if strings.TrimSpace(r) == "nullable" && isEmpty(v) {
			return ""
		}
	}
	for _, r := range rules {
		if msg := applyRule(strings.TrimSpace(r), field, v); msg != "" {
			return msg
		}
	}
	return ""
}

func applyRule(rule, field string, v reflect.Value) string {
	key, param, _ := strings.Cut(rule, "=")
	raw := ""
	if v.IsValid() {
		raw = fmt.Sprintf("%v", v.Interface())
	}

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
	case "uuid":
		if !uuidRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid UUID.", field)
		}
	case "date":
		if _, err := time.Parse(time.DateOnly, raw); err != nil {
			return fmt.Sprintf("The %s is not a valid date (YYYY-MM-DD).", field)
		}
	case "min":
		n := parseFloat(param)
		if isNumericKind(v) {
			if toFloat(v) < n {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
		} else if float64(length(v, raw)) < n {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
	case "max":
		n := parseFloat(param)
		if isNumericKind(v) {
			if toFloat(v) > n {
				return fmt.Sprintf("The %s must not be greater than %s.", field, param)
			}
		} else if float64(length(v, raw)) > n {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}
	case "finite":
		if f := toFloat(v); math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Sprintf("The %s must be a finite number.", field)
		}
	case "gt":
		if !(toFloat(v) > parseFloat(param)) {
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		}
	case "gte":
		if !(toFloat(v) >= parseFloat(param)) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
	case "lt":
		if !(toFloat(v) < parseFloat(param)) {
			return fmt.Sprintf("The %s must be less than %s.", field, param)
		}
	case "lte":
		if !(toFloat(v) <= parseFloat(param)) {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}
	case "in":
		for _, a := range strings.Split(param, "|") {
			if raw == strings.TrimSpace(a) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}

	return ""
}

var uuidRE = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func isEmpty(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

// length counts runes for strings and elements for collections.
func length(v reflect.Value, raw string) int {
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len()
	}
	return len([]rune(raw))
}

func isNumericKind(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	if !v.IsValid() {
		return 0
	}
	f, _ := strconv.ParseFloat(fmt.Sprintf("%v", v.Interface()), 64)
	return f
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func jsonFieldName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	return name
}
