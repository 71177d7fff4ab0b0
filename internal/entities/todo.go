package entities

import "time"

// Todo priorities as stored in the todo_priority enum column.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// Todo represents a todo entity in the database
type Todo struct {
	ID          string     `json:"id"` // UUID
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"` // Pointer allows nil (no due date)
	UserID      string     `json:"userId"`            // Owning user, UUID
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
