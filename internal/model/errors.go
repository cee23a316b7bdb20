package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUsernameTaken is returned by UserStore.Create when the username already exists.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrDuplicateID is returned by UserStore.Create when the generated id is already in use.
	ErrDuplicateID = errors.New("user id already exists")
)
