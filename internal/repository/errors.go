package repository

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the given id or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when creating a user with an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrTodoNotFound is returned when a todo is absent or not owned by the caller.
	ErrTodoNotFound = errors.New("todo not found")
)
