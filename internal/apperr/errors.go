package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrNoActiveNote  = errors.New("no active note")
	ErrAlreadyExists = errors.New("already exists")
)
