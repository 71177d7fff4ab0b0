package service

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"taskly-be/internal/apperrors"
	"taskly-be/internal/entities"
	"taskly-be/internal/jwt"
	"taskly-be/internal/models"
)

type fakeUserRepo struct {
	createFn      func(email, passwordHash string, name *string) (*entities.User, error)
	findByEmailFn func(email string) (*entities.User, error)
	findByIDFn    func(id string) (*entities.User, error)
}

func (f *fakeUserRepo) Create(email, passwordHash string, name *string) (*entities.User, error) {
	return f.createFn(email, passwordHash, name)
}

func (f *fakeUserRepo) FindByEmail(email string) (*entities.User, error) {
	return f.findByEmailFn(email)
}

func (f *fakeUserRepo) FindByID(id string) (*entities.User, error) {
	return f.findByIDFn(id)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testJWTService() *jwt.JWTService {
	return jwt.NewJWTService("test-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	var storedHash string
	repo := &fakeUserRepo{
		createFn: func(email, passwordHash string, name *string) (*entities.User, error) {
			storedHash = passwordHash
			return &entities.User{
				ID:           "2f9d8d7e-1111-4222-8333-444455556666",
				Email:        email,
				PasswordHash: passwordHash,
				Name:         name,
				CreatedAt:    time.Now().UTC(),
			}, nil
		},
	}
	svc := NewAuthService(repo, testJWTService(), bcrypt.MinCost, testLogger())

	name := "Alice"
	resp, err := svc.Register(&models.RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
		Name:     &name,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if storedHash == "hunter22" {
		t.Error("password was stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("hunter22")); err != nil {
		t.Errorf("stored hash does not verify against the password: %v", err)
	}

	claims, err := testJWTService().ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("returned token does not validate: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Errorf("token resolves to %q, want %q", claims.UserID, resp.User.ID)
	}
	if resp.User.Email != "alice@example.com" {
		t.Errorf("User.Email = %q", resp.User.Email)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{
		createFn: func(email, passwordHash string, name *string) (*entities.User, error) {
			return nil, apperrors.ErrEmailTaken
		},
	}
	svc := NewAuthService(repo, testJWTService(), bcrypt.MinCost, testLogger())

	_, err := svc.Register(&models.RegisterRequest{Email: "dup@example.com", Password: "hunter22"})
	if !errors.Is(err, apperrors.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	user := &entities.User{
		ID:           "aaaa1111-2222-4333-8444-555566667777",
		Email:        "bob@example.com",
		PasswordHash: string(hash),
	}
	repo := &fakeUserRepo{
		findByEmailFn: func(email string) (*entities.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, apperrors.ErrNotFound
		},
	}
	svc := NewAuthService(repo, testJWTService(), bcrypt.MinCost, testLogger())

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(&models.LoginRequest{Email: "bob@example.com", Password: "correct-horse"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		claims, err := testJWTService().ValidateToken(resp.Token)
		if err != nil {
			t.Fatalf("token does not validate: %v", err)
		}
		if claims.UserID != user.ID {
			t.Errorf("token resolves to %q, want %q", claims.UserID, user.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(&models.LoginRequest{Email: "bob@example.com", Password: "wrong"})
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email yields the same error", func(t *testing.T) {
		_, err := svc.Login(&models.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestAuthService_Profile(t *testing.T) {
	user := &entities.User{
		ID:    "aaaa1111-2222-4333-8444-555566667777",
		Email: "bob@example.com",
	}
	repo := &fakeUserRepo{
		findByIDFn: func(id string) (*entities.User, error) {
			if id == user.ID {
				return user, nil
			}
			return nil, apperrors.ErrNotFound
		},
	}
	svc := NewAuthService(repo, testJWTService(), bcrypt.MinCost, testLogger())

	resp, err := svc.Profile(user.ID)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if resp.ID != user.ID || resp.Email != user.Email {
		t.Errorf("got %+v", resp)
	}

	if _, err := svc.Profile("missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
