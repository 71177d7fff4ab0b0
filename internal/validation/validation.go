package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single violated constraint on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error aggregates every violated field of a request body or query string.
type Error struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewError builds a validation error for a single field.
func NewError(field, message string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Message: message}}}
}

// Translate converts a binding error returned by gin/validator into a
// structured Error enumerating every violated field. Errors that are not
// validator.ValidationErrors (e.g. malformed JSON) collapse into a single
// body-level violation.
func Translate(err error) *Error {
	var already *Error
	if errors.As(err, &already) {
		return already
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewError("body", "must be valid JSON matching the expected shape")
	}

	out := &Error{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   jsonFieldName(fe.Field()),
			Message: messageForTag(fe),
		})
	}
	return out
}

// jsonFieldName lowercases the first rune of a struct field name to match the
// camelCase JSON tags used throughout the API.
func jsonFieldName(structField string) string {
	if structField == "" {
		return structField
	}
	r := []rune(structField)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		return "is invalid"
	}
}

// Accepted due date layouts: full RFC 3339 timestamps or a bare calendar date.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDueDate parses an optional due date string. An empty string is treated
// as absent rather than invalid, matching how clients submit cleared form
// fields. Returned times are normalized to UTC.
func ParseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			utc := t.UTC()
			return &utc, nil
		}
	}
	return nil, NewError("dueDate", "must be an RFC 3339 timestamp or YYYY-MM-DD date")
}

// sortColumns whitelists the sortable fields and maps their API names to the
// underlying columns. Unknown fields are rejected outright instead of being
// passed through to the store.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"priority":  "priority",
	"dueDate":   "due_date",
}

// NormalizeSort validates sortBy/sortOrder query parameters and returns the
// column and direction to use. Empty values fall back to createdAt desc.
func NormalizeSort(sortBy, sortOrder string) (column, order string, err error) {
	if sortBy == "" {
		sortBy = "createdAt"
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return "", "", NewError("sortBy", "must be one of createdAt, title, priority, dueDate")
	}

	switch sortOrder {
	case "":
		order = "DESC"
	case "asc":
		order = "ASC"
	case "desc":
		order = "DESC"
	default:
		return "", "", NewError("sortOrder", "must be one of asc, desc")
	}
	return column, order, nil
}
