package model

import "errors"

var (
	// ErrNotFound is returned by stores when no record matches.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateUser is returned on registration when the email is taken.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken means the token is malformed, expired, carries the
	// wrong class, or its signature does not verify.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenRevoked means the token verified but has no live entry in the
	// revocation index.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrStoreUnavailable marks transient infrastructure failures. It must
	// surface as a server-side error, never as an authentication failure.
	ErrStoreUnavailable = errors.New("store unavailable")
)
