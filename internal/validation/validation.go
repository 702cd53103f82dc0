// Package validation implements schema-driven request validation. A schema is
// a static table of per-field rules plus optional object-level rules; the
// validator collects every violation in a single pass instead of failing on
// the first one.
package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldType declares the expected type of a field value.
type FieldType int

const (
	TypeString FieldType = iota
	TypeInt
)

var validate = validator.New()

// Rule describes the constraints for a single field.
type Rule struct {
	Field    string    // payload key
	Label    string    // human-readable name used in messages
	Type     FieldType
	Required bool
	MinLen   int  // minimum string length, 0 to skip
	Min      int  // minimum integer value, used with MinSet
	MinSet   bool
	Email    bool // value must be a syntactically valid email address
}

// Schema is a declarative set of field rules with optional object-level rules.
type Schema struct {
	Rules []Rule

	// RequireAny rejects payloads that contain none of the schema's fields.
	// Used by update schemas where every field is optional but an empty
	// payload is meaningless.
	RequireAny        bool
	RequireAnyMessage string
}

// Errors maps a field path to the ordered list of its violation messages.
type Errors map[string][]string

// Validate checks payload against the schema and returns nil when valid, or
// a field-keyed map of violation messages. Unknown payload fields are
// ignored. All violations are collected in one pass.
func (s Schema) Validate(payload map[string]any) Errors {
	errs := Errors{}

	if s.RequireAny {
		present := false
		for _, r := range s.Rules {
			if _, ok := payload[r.Field]; ok {
				present = true
				break
			}
		}
		if !present {
			msg := s.RequireAnyMessage
			if msg == "" {
				msg = "At least one field must be provided"
			}
			errs[""] = append(errs[""], msg)
		}
	}

	for _, r := range s.Rules {
		value, ok := payload[r.Field]
		if !ok || value == nil {
			if r.Required {
				errs.add(r.Field, fmt.Sprintf("%s is required", r.label()))
			}
			continue
		}

		switch r.Type {
		case TypeString:
			r.checkString(value, errs)
		case TypeInt:
			r.checkInt(value, errs)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (r Rule) label() string {
	if r.Label != "" {
		return r.Label
	}
	return r.Field
}

func (r Rule) checkString(value any, errs Errors) {
	str, ok := value.(string)
	if !ok {
		errs.add(r.Field, fmt.Sprintf("%s must be a string", r.label()))
		return
	}

	if r.Required && str == "" {
		errs.add(r.Field, fmt.Sprintf("%s is required", r.label()))
		return
	}

	if r.MinLen > 0 && len(str) < r.MinLen {
		errs.add(r.Field, fmt.Sprintf("%s must be at least %d characters long", r.label(), r.MinLen))
	}

	if r.Email && validate.Var(str, "email") != nil {
		errs.add(r.Field, "Invalid email format")
	}
}

func (r Rule) checkInt(value any, errs Errors) {
	n, ok := coerceInt(value)
	if !ok {
		errs.add(r.Field, fmt.Sprintf("%s must be an integer", r.label()))
		return
	}

	if r.MinSet && n < int64(r.Min) {
		errs.add(r.Field, fmt.Sprintf("%s must be greater than %d", r.label(), r.Min-1))
	}
}

// coerceInt accepts the integer representations seen in practice: JSON
// numbers decode as float64, path and query parameters arrive as strings.
func coerceInt(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func (e Errors) add(field, message string) {
	e[field] = append(e[field], message)
}
