package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")

	ErrProfileNotFound = errors.New("profile not found")
	ErrBookNotFound    = errors.New("book not found")

	ErrDeckSessionNotFound = errors.New("deck session not found")
	ErrEmptyMessage        = errors.New("message content is empty")
	ErrCannotChatSelf      = errors.New("cannot chat with yourself")
	ErrInvalidInput        = errors.New("invalid input")
)
