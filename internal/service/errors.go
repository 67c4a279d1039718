package service

import "errors"

// Sentinel errors raised by the signup/login flows. The transport edge maps
// each one onto a stable status code and response body.
var (
	ErrWrongCredentials  = errors.New("wrong credentials")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidRole       = errors.New("invalid role")
	ErrTooManyAttempts   = errors.New("too many login attempts")
	ErrDatabase          = errors.New("database error")
)
