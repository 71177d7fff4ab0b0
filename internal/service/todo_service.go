package service

import (
	"github.com/google/uuid"

	"taskly-be/internal/apperrors"
	"taskly-be/internal/entities"
	"taskly-be/internal/models"
	"taskly-be/internal/repository"
	"taskly-be/internal/validation"
)

// TodoService defines the interface for todo business logic. Every operation
// is scoped to the requesting user's identity.
type TodoService interface {
	List(userID string, query *models.ListTodosQuery) ([]*entities.Todo, error)
	Get(id, userID string) (*entities.Todo, error)
	Create(userID string, req *models.CreateTodoRequest) (*entities.Todo, error)
	Update(id, userID string, req *models.UpdateTodoRequest) (*entities.Todo, error)
	Delete(id, userID string) error
	Toggle(id, userID string) (*entities.Todo, error)
}

type todoService struct {
	todoRepo repository.TodoRepository
}

// NewTodoService creates a new todo service
func NewTodoService(todoRepo repository.TodoRepository) TodoService {
	return &todoService{todoRepo: todoRepo}
}

// List returns the user's todos after validating filter and sort parameters.
// An unknown sort field is rejected instead of silently falling back.
func (s *todoService) List(userID string, query *models.ListTodosQuery) ([]*entities.Todo, error) {
	if query.Priority != "" && !validPriority(query.Priority) {
		return nil, validation.NewError("priority", "must be one of LOW, MEDIUM, HIGH")
	}

	orderColumn, orderDir, err := validation.NormalizeSort(query.SortBy, query.SortOrder)
	if err != nil {
		return nil, err
	}

	return s.todoRepo.List(userID, query.Completed, query.Priority, orderColumn, orderDir)
}

// Get returns a single todo owned by the user. A todo owned by someone else
// is reported as not found, same as a missing one.
func (s *todoService) Get(id, userID string) (*entities.Todo, error) {
	if !validID(id) {
		return nil, apperrors.ErrNotFound
	}
	return s.todoRepo.FindByID(id, userID)
}

// Create persists a new todo owned by the user, defaulting priority to MEDIUM.
func (s *todoService) Create(userID string, req *models.CreateTodoRequest) (*entities.Todo, error) {
	priority := req.Priority
	if priority == "" {
		priority = entities.PriorityMedium
	}

	dueDate, err := validation.ParseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	return s.todoRepo.Create(userID, req.Title, trimEmpty(req.Description), priority, dueDate)
}

// Update applies a partial update: only supplied fields mutate, and an
// explicit null due date clears it while an omitted one leaves it untouched.
func (s *todoService) Update(id, userID string, req *models.UpdateTodoRequest) (*entities.Todo, error) {
	if !validID(id) {
		return nil, apperrors.ErrNotFound
	}

	update := &repository.TodoUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    req.Priority,
	}
	if req.DueDate.Set {
		update.DueDateSet = true
		if req.DueDate.Valid {
			t := req.DueDate.Time
			update.DueDate = &t
		}
	}

	return s.todoRepo.Update(id, userID, update)
}

// Delete removes the user's todo. Deleting an already-gone id reports not
// found rather than succeeding.
func (s *todoService) Delete(id, userID string) error {
	if !validID(id) {
		return apperrors.ErrNotFound
	}
	return s.todoRepo.Delete(id, userID)
}

// Toggle flips the completed flag against the current stored value.
func (s *todoService) Toggle(id, userID string) (*entities.Todo, error) {
	if !validID(id) {
		return nil, apperrors.ErrNotFound
	}
	return s.todoRepo.Toggle(id, userID)
}

// validID guards the store from non-UUID path parameters, which Postgres
// would otherwise reject with a type error instead of an empty result.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func validPriority(priority string) bool {
	switch priority {
	case entities.PriorityLow, entities.PriorityMedium, entities.PriorityHigh:
		return true
	}
	return false
}

// trimEmpty collapses an empty-string optional field to absent.
func trimEmpty(s *string) *string {
	if s != nil && *s == "" {
		return nil
	}
	return s
}
