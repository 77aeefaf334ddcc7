// Package schema validates tracked containers against declarative shapes.
// Container schemas read entries through whatever value they are given, so
// validating a view inside an effect re-validates when the data changes.
package schema

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	tracked "github.com/pumped-fn/tracked-go"
)

// ValidationError reports one failed rule and the path to the offending
// value.
type ValidationError struct {
	Message string
	Path    []string
}

func (e *ValidationError) Error() string {
	if len(e.Path) > 0 {
		return fmt.Sprintf("%s at %s", e.Message, strings.Join(e.Path, "."))
	}
	return e.Message
}

// prefixPath pushes elem onto the front of err's path when err is a
// ValidationError.
func prefixPath(err error, elem string) error {
	if valErr, ok := err.(*ValidationError); ok {
		valErr.Path = append([]string{elem}, valErr.Path...)
	}
	return err
}

// Schema defines validation rules.
type Schema interface {
	// Validate checks value and returns it, scalars possibly coerced.
	Validate(value any) (any, error)
}

// StringSchema validates strings.
type StringSchema struct {
	MinLength int
	MaxLength int
	Pattern   string
}

func (s *StringSchema) Validate(value any) (any, error) {
	str, ok := value.(string)
	if !ok {
		return nil, &ValidationError{Message: "value is not a string"}
	}

	if s.MinLength > 0 && len(str) < s.MinLength {
		return nil, &ValidationError{
			Message: fmt.Sprintf("string length %d is less than minimum length %d", len(str), s.MinLength),
		}
	}

	if s.MaxLength > 0 && len(str) > s.MaxLength {
		return nil, &ValidationError{
			Message: fmt.Sprintf("string length %d is greater than maximum length %d", len(str), s.MaxLength),
		}
	}

	if s.Pattern != "" {
		matched, err := regexp.MatchString(s.Pattern, str)
		if err != nil {
			return nil, &ValidationError{
				Message: fmt.Sprintf("invalid pattern %q: %v", s.Pattern, err),
			}
		}
		if !matched {
			return nil, &ValidationError{
				Message: fmt.Sprintf("string does not match pattern %q", s.Pattern),
			}
		}
	}

	return str, nil
}

// NumberSchema validates numeric values. All numeric kinds are accepted and
// returned as float64.
type NumberSchema struct {
	Min      float64
	Max      float64
	Positive bool
	Negative bool
	Integer  bool
}

func (s *NumberSchema) Validate(value any) (any, error) {
	num, ok := asFloat(value)
	if !ok {
		return nil, &ValidationError{Message: "value is not a number"}
	}

	if s.Min != 0 && num < s.Min {
		return nil, &ValidationError{
			Message: fmt.Sprintf("number %v is less than minimum %v", num, s.Min),
		}
	}

	if s.Max != 0 && num > s.Max {
		return nil, &ValidationError{
			Message: fmt.Sprintf("number %v is greater than maximum %v", num, s.Max),
		}
	}

	if s.Positive && num <= 0 {
		return nil, &ValidationError{Message: "number must be positive"}
	}

	if s.Negative && num >= 0 {
		return nil, &ValidationError{Message: "number must be negative"}
	}

	if s.Integer && float64(int64(num)) != num {
		return nil, &ValidationError{Message: "number must be an integer"}
	}

	return num, nil
}

// asFloat widens numeric kinds to float64. Strings and booleans do not
// count as numbers.
func asFloat(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// BooleanSchema validates booleans.
type BooleanSchema struct{}

func (s *BooleanSchema) Validate(value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, &ValidationError{Message: "value is not a boolean"}
	}
	return b, nil
}

// ListSchema validates list containers and their items.
type ListSchema struct {
	Items    Schema
	MinItems int
	MaxItems int
}

func (s *ListSchema) Validate(value any) (any, error) {
	list, ok := value.(tracked.Composite)
	if !ok || list.Kind() != tracked.KindList {
		return nil, &ValidationError{Message: "value is not a list"}
	}

	length := list.Len()

	if s.MinItems > 0 && length < s.MinItems {
		return nil, &ValidationError{
			Message: fmt.Sprintf("list length %d is less than minimum length %d", length, s.MinItems),
		}
	}

	if s.MaxItems > 0 && length > s.MaxItems {
		return nil, &ValidationError{
			Message: fmt.Sprintf("list length %d is greater than maximum length %d", length, s.MaxItems),
		}
	}

	if s.Items != nil {
		var itemErr error
		list.Each(func(key, item any) bool {
			if _, err := s.Items.Validate(item); err != nil {
				itemErr = prefixPath(err, fmt.Sprintf("[%v]", key))
				return false
			}
			return true
		})
		if itemErr != nil {
			return nil, itemErr
		}
	}

	return list, nil
}

// RecordSchema validates record containers property by property.
type RecordSchema struct {
	Properties map[string]Schema
	Required   []string
}

func (s *RecordSchema) Validate(value any) (any, error) {
	record, ok := value.(tracked.Composite)
	if !ok || record.Kind() != tracked.KindRecord {
		return nil, &ValidationError{Message: "value is not a record"}
	}

	for _, req := range s.Required {
		if !record.Has(req) {
			return nil, &ValidationError{
				Message: fmt.Sprintf("required property %s is missing", req),
			}
		}
	}

	for key, propSchema := range s.Properties {
		prop, present := record.Get(key)
		if !present {
			continue
		}
		if _, err := propSchema.Validate(prop); err != nil {
			return nil, prefixPath(err, key)
		}
	}

	return record, nil
}

// AnySchema accepts every value.
type AnySchema struct{}

func (s *AnySchema) Validate(value any) (any, error) {
	return value, nil
}

// String creates a new string schema.
func String() *StringSchema {
	return &StringSchema{}
}

// Number creates a new number schema.
func Number() *NumberSchema {
	return &NumberSchema{}
}

// Boolean creates a new boolean schema.
func Boolean() *BooleanSchema {
	return &BooleanSchema{}
}

// List creates a new list schema.
func List(items Schema) *ListSchema {
	return &ListSchema{Items: items}
}

// Record creates a new record schema.
func Record(properties map[string]Schema) *RecordSchema {
	return &RecordSchema{Properties: properties}
}

// Any creates a schema that accepts every value.
func Any() Schema {
	return &AnySchema{}
}
