package models

import (
	"bytes"
	"encoding/json"
	"time"

	"taskly-be/internal/validation"
)

// CreateTodoRequest represents the request body for creating a todo
type CreateTodoRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description,omitempty"`
	Priority    string  `json:"priority,omitempty" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     string  `json:"dueDate,omitempty"` // RFC 3339 or YYYY-MM-DD, parsed by the service
}

// UpdateTodoRequest represents the request body for a partial todo update.
// Only non-nil fields are applied; DueDate distinguishes "clear" from "leave
// unchanged" via NullableTime.
type UpdateTodoRequest struct {
	Title       *string      `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string      `json:"description"`
	Completed   *bool        `json:"completed"`
	Priority    *string      `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     NullableTime `json:"dueDate"`
}

// NullableTime is a tri-state timestamp for partial updates:
// field omitted (Set=false), explicit null or empty string (Set=true,
// Valid=false, meaning clear), or a parseable date (Set=true, Valid=true).
type NullableTime struct {
	Set   bool
	Valid bool
	Time  time.Time
}

var jsonNull = []byte("null")

// UnmarshalJSON implements json.Unmarshaler. It only runs when the field is
// present in the body, so Set=false can only mean the field was omitted.
func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, jsonNull) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return validation.NewError("dueDate", "must be a string or null")
	}

	parsed, err := validation.ParseDueDate(raw)
	if err != nil {
		return err
	}
	if parsed == nil {
		// Empty string clears the due date, same as explicit null.
		return nil
	}

	n.Valid = true
	n.Time = *parsed
	return nil
}

// ListTodosQuery carries the parsed query string of the list endpoint.
type ListTodosQuery struct {
	Completed *bool
	Priority  string
	SortBy    string
	SortOrder string
}
