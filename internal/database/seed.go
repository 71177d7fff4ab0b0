package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "password123"
)

type demoTodo struct {
	title       string
	description string
	priority    string
	completed   bool
	dueInDays   int // 0 means no due date
}

var demoTodos = []demoTodo{
	{title: "Complete project setup", description: "Set up the repository, migrations and configuration", priority: "HIGH", completed: true},
	{title: "Implement CRUD operations", description: "Add create, read, update, and delete functionality for todos", priority: "HIGH"},
	{title: "Add user authentication", description: "Implement JWT-based authentication system", priority: "MEDIUM", completed: true},
	{title: "Design beautiful UI", description: "Create a modern and responsive user interface", priority: "MEDIUM", dueInDays: 7},
	{title: "Write documentation", description: "Document the API and setup instructions", priority: "LOW"},
}

// Seed creates the demo account and its todos. Existing demo todos are
// replaced so repeated runs converge on the same state.
func Seed(db *sql.DB, bcryptCost int, log *logrus.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (id, email, password_hash, name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET updated_at = (NOW() AT TIME ZONE 'UTC')
		RETURNING id
	`, uuid.NewString(), demoEmail, string(hash), "Demo User").Scan(&userID)
	if err != nil {
		return fmt.Errorf("failed to upsert demo user: %w", err)
	}

	if _, err := db.Exec(`DELETE FROM todos WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear demo todos: %w", err)
	}

	for _, t := range demoTodos {
		var dueDate interface{}
		if t.dueInDays > 0 {
			dueDate = time.Now().UTC().AddDate(0, 0, t.dueInDays)
		}
		_, err := db.Exec(`
			INSERT INTO todos (id, title, description, completed, priority, due_date, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.NewString(), t.title, t.description, t.completed, t.priority, dueDate, userID)
		if err != nil {
			return fmt.Errorf("failed to insert demo todo %q: %w", t.title, err)
		}
	}

	log.WithFields(logrus.Fields{
		"email": demoEmail,
		"todos": len(demoTodos),
	}).Info("database seeded")

	return nil
}
