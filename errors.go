package goIdentity

import "errors"

var (
	// ErrUserExists is returned by Register when the email is already taken.
	// Transport mapping: 409 Conflict.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned by Login for an unknown email or a
	// wrong password. The two cases are deliberately indistinguishable so the
	// endpoint cannot be used to enumerate accounts. Transport mapping: 401.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned by internal user lookups (e.g. resolving a
	// confirmation token's owner). It never surfaces from Login.
	ErrUserNotFound = errors.New("user not found")
	// ErrSessionNotFound is returned by Refresh when no session exists for
	// the presented refresh token, including replay of an already-rotated
	// token. Transport mapping: 400 Bad Request.
	ErrSessionNotFound = errors.New("session not found")
	// ErrConfirmationInvalid is returned by VerifyEmail for an unknown or
	// already-consumed confirmation token. Transport mapping: 400.
	ErrConfirmationInvalid = errors.New("invalid confirmation token")
	// ErrUnauthorized is returned by the validation gate for tokens that fail
	// signature or ownership checks.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrEngineNotReady is returned when an Engine method is invoked on an
	// engine missing a required collaborator.
	ErrEngineNotReady = errors.New("engine not initialized")
)
