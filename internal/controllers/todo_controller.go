package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskly-be/internal/entities"
	"taskly-be/internal/models"
	"taskly-be/internal/service"
	"taskly-be/internal/validation"
)

type TodoController struct {
	todoService service.TodoService
	errs        *ErrorTranslator
}

func NewTodoController(todoService service.TodoService, errs *ErrorTranslator) *TodoController {
	return &TodoController{
		todoService: todoService,
		errs:        errs,
	}
}

// List handles GET /api/todos
func (tc *TodoController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := models.ListTodosQuery{
		Priority:  c.Query("priority"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	if raw := c.Query("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			tc.errs.Respond(c, validation.NewError("completed", "must be true or false"))
			return
		}
		query.Completed = &completed
	}

	todos, err := tc.todoService.List(userID, &query)
	if err != nil {
		tc.errs.Respond(c, err)
		return
	}
	if todos == nil {
		todos = []*entities.Todo{}
	}

	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

// Get handles GET /api/todos/:id
func (tc *TodoController) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	todo, err := tc.todoService.Get(c.Param("id"), userID)
	if err != nil {
		tc.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

// Create handles POST /api/todos
func (tc *TodoController) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		tc.errs.Respond(c, validation.Translate(err))
		return
	}

	todo, err := tc.todoService.Create(userID, &req)
	if err != nil {
		tc.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Todo created successfully",
		"todo":    todo,
	})
}

// Update handles PUT /api/todos/:id
func (tc *TodoController) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		tc.errs.Respond(c, validation.Translate(err))
		return
	}

	todo, err := tc.todoService.Update(c.Param("id"), userID, &req)
	if err != nil {
		tc.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Todo updated successfully",
		"todo":    todo,
	})
}

// Delete handles DELETE /api/todos/:id
func (tc *TodoController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := tc.todoService.Delete(c.Param("id"), userID); err != nil {
		tc.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Todo deleted successfully",
	})
}

// Toggle handles PATCH /api/todos/:id/toggle
func (tc *TodoController) Toggle(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	todo, err := tc.todoService.Toggle(c.Param("id"), userID)
	if err != nil {
		tc.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Todo status updated successfully",
		"todo":    todo,
	})
}
