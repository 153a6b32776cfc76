package domain

import "errors"

var (
	ErrNoSession       = errors.New("no active session")
	ErrSessionExpired  = errors.New("session expired")
	ErrSecretNotFound  = errors.New("secret not found")
	ErrProfileNotFound = errors.New("profile not found")
)
