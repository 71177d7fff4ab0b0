package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskly-be/internal/apperrors"
	"taskly-be/internal/entities"
)

const todoColumns = "id, title, description, completed, priority, due_date, user_id, created_at, updated_at"

// TodoUpdate describes a partial update. Nil fields are left untouched.
// DueDateSet distinguishes "clear the due date" (DueDateSet with nil DueDate)
// from "don't touch it" (DueDateSet false).
type TodoUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
	DueDateSet  bool
	DueDate     *time.Time
}

// TodoRepository defines the interface for todo database operations. Every
// query takes the owning user's ID and filters on id AND user_id in a single
// statement, so a todo is never visible or mutable across users.
type TodoRepository interface {
	Create(userID, title string, description *string, priority string, dueDate *time.Time) (*entities.Todo, error)
	FindByID(id, userID string) (*entities.Todo, error)
	List(userID string, completed *bool, priority, orderColumn, orderDir string) ([]*entities.Todo, error)
	Update(id, userID string, update *TodoUpdate) (*entities.Todo, error)
	Delete(id, userID string) error
	Toggle(id, userID string) (*entities.Todo, error)
}

type todoRepository struct {
	db *sql.DB
}

// NewTodoRepository creates a new todo repository
func NewTodoRepository(db *sql.DB) TodoRepository {
	return &todoRepository{db: db}
}

// Create inserts a new todo owned by userID
func (r *todoRepository) Create(userID, title string, description *string, priority string, dueDate *time.Time) (*entities.Todo, error) {
	query := fmt.Sprintf(`
		INSERT INTO todos (id, title, description, priority, due_date, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`, todoColumns)

	var dueDateValue interface{}
	if dueDate != nil {
		dueDateValue = dueDate.UTC()
	}

	todo, err := scanTodo(r.db.QueryRow(query, uuid.NewString(), title, description, priority, dueDateValue, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, nil
}

// FindByID finds a todo by ID, scoped to the owning user
func (r *todoRepository) FindByID(id, userID string) (*entities.Todo, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM todos
		WHERE id = $1 AND user_id = $2
	`, todoColumns)

	todo, err := scanTodo(r.db.QueryRow(query, id, userID))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	return todo, nil
}

// List returns the user's todos with optional completed/priority filters.
// orderColumn and orderDir come from the validation whitelist, never from
// raw client input.
func (r *todoRepository) List(userID string, completed *bool, priority, orderColumn, orderDir string) ([]*entities.Todo, error) {
	where := []string{"user_id = $1"}
	args := []interface{}{userID}

	if completed != nil {
		args = append(args, *completed)
		where = append(where, fmt.Sprintf("completed = $%d", len(args)))
	}
	if priority != "" {
		args = append(args, priority)
		where = append(where, fmt.Sprintf("priority = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM todos
		WHERE %s
		ORDER BY %s %s, created_at DESC
	`, todoColumns, strings.Join(where, " AND "), orderColumn, orderDir)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []*entities.Todo
	for rows.Next() {
		var todo entities.Todo
		if err := rows.Scan(
			&todo.ID,
			&todo.Title,
			&todo.Description,
			&todo.Completed,
			&todo.Priority,
			&todo.DueDate,
			&todo.UserID,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, &todo)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

// Update applies a partial update in a single statement. Ownership is part of
// the WHERE clause, so existence and authorization are checked atomically with
// the mutation.
func (r *todoRepository) Update(id, userID string, update *TodoUpdate) (*entities.Todo, error) {
	sets, args := buildTodoUpdateSet(update)

	query := fmt.Sprintf(`
		UPDATE todos
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), len(args)+1, len(args)+2, todoColumns)
	args = append(args, id, userID)

	todo, err := scanTodo(r.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return todo, nil
}

// buildTodoUpdateSet translates a TodoUpdate into SET fragments and their
// arguments. updated_at is always touched.
func buildTodoUpdateSet(update *TodoUpdate) ([]string, []interface{}) {
	var sets []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		add("title", *update.Title)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Completed != nil {
		add("completed", *update.Completed)
	}
	if update.Priority != nil {
		add("priority", *update.Priority)
	}
	if update.DueDateSet {
		if update.DueDate != nil {
			add("due_date", update.DueDate.UTC())
		} else {
			add("due_date", nil)
		}
	}

	sets = append(sets, "updated_at = (NOW() AT TIME ZONE 'UTC')")
	return sets, args
}

// Delete removes a todo, scoped to the owning user
func (r *todoRepository) Delete(id, userID string) error {
	result, err := r.db.Exec(`DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Toggle flips completed against the stored value in one atomic statement, so
// two concurrent toggles can't both read the same prior state.
func (r *todoRepository) Toggle(id, userID string) (*entities.Todo, error) {
	query := fmt.Sprintf(`
		UPDATE todos
		SET completed = NOT completed, updated_at = (NOW() AT TIME ZONE 'UTC')
		WHERE id = $1 AND user_id = $2
		RETURNING %s
	`, todoColumns)

	todo, err := scanTodo(r.db.QueryRow(query, id, userID))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle todo: %w", err)
	}

	return todo, nil
}

func scanTodo(row *sql.Row) (*entities.Todo, error) {
	var todo entities.Todo
	err := row.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.Completed,
		&todo.Priority,
		&todo.DueDate,
		&todo.UserID,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &todo, nil
}
