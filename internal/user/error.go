package user

import "errors"

var (
	ErrEmailExists = errors.New("email already registered")
	ErrNotFound    = errors.New("user not found")
	ErrBadLogin    = errors.New("invalid email or password")
)
