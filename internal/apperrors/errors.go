package apperrors

import "errors"

// Sentinel errors shared across services and repositories. Controllers translate
// these into HTTP responses in one place; anything unrecognized becomes a 500.
var (
	// ErrNotFound covers both a missing record and a record owned by another
	// user. The two cases are deliberately indistinguishable to the caller.
	ErrNotFound = errors.New("resource not found")

	// ErrEmailTaken signals a unique constraint violation on users.email.
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password so login failures don't reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken covers expired, malformed and mis-signed tokens alike.
	ErrInvalidToken = errors.New("invalid token")
)
