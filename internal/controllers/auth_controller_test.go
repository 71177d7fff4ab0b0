package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskly-be/internal/apperrors"
	"taskly-be/internal/middleware"
	"taskly-be/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testTranslator() *ErrorTranslator {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewErrorTranslator(log, false)
}

// injectUser stands in for the auth middleware in handler tests.
func injectUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextUserEmail, "test@example.com")
	}
}

type fakeAuthService struct {
	registerFn func(req *models.RegisterRequest) (*models.AuthResponse, error)
	loginFn    func(req *models.LoginRequest) (*models.AuthResponse, error)
	profileFn  func(userID string) (*models.UserResponse, error)
}

func (f *fakeAuthService) Register(req *models.RegisterRequest) (*models.AuthResponse, error) {
	return f.registerFn(req)
}

func (f *fakeAuthService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	return f.loginFn(req)
}

func (f *fakeAuthService) Profile(userID string) (*models.UserResponse, error) {
	return f.profileFn(userID)
}

func TestAuthController_Register(t *testing.T) {
	svc := &fakeAuthService{
		registerFn: func(req *models.RegisterRequest) (*models.AuthResponse, error) {
			return &models.AuthResponse{
				Message: "User created successfully",
				User:    models.UserResponse{ID: "u1", Email: req.Email},
				Token:   "signed-token",
			}, nil
		},
	}
	ac := NewAuthController(svc, testTranslator())

	router := gin.New()
	router.POST("/api/auth/register", ac.Register)

	body := `{"email":"alice@example.com","password":"hunter22","name":"Alice"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var resp models.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Token != "signed-token" || resp.User.Email != "alice@example.com" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAuthController_Register_ValidationFailure(t *testing.T) {
	ac := NewAuthController(&fakeAuthService{}, testTranslator())

	router := gin.New()
	router.POST("/api/auth/register", ac.Register)

	// Bad email and too-short password: both violations must be reported.
	body := `{"email":"not-an-email","password":"abc"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Error   string `json:"error"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp.Details) != 2 {
		t.Errorf("got %d detail entries, want 2: %+v", len(resp.Details), resp.Details)
	}
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	svc := &fakeAuthService{
		registerFn: func(req *models.RegisterRequest) (*models.AuthResponse, error) {
			return nil, apperrors.ErrEmailTaken
		},
	}
	ac := NewAuthController(svc, testTranslator())

	router := gin.New()
	router.POST("/api/auth/register", ac.Register)

	body := `{"email":"dup@example.com","password":"hunter22"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "User already exists") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestAuthController_Login_InvalidCredentials(t *testing.T) {
	svc := &fakeAuthService{
		loginFn: func(req *models.LoginRequest) (*models.AuthResponse, error) {
			return nil, apperrors.ErrInvalidCredentials
		},
	}
	ac := NewAuthController(svc, testTranslator())

	router := gin.New()
	router.POST("/api/auth/login", ac.Login)

	body := `{"email":"bob@example.com","password":"wrong"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthController_Me(t *testing.T) {
	svc := &fakeAuthService{
		profileFn: func(userID string) (*models.UserResponse, error) {
			return &models.UserResponse{ID: userID, Email: "bob@example.com"}, nil
		},
	}
	ac := NewAuthController(svc, testTranslator())

	router := gin.New()
	router.GET("/api/auth/me", injectUser("u1"), ac.Me)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		User models.UserResponse `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.User.ID != "u1" {
		t.Errorf("user.id = %q, want u1", resp.User.ID)
	}
}
