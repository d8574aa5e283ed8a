package db

import "errors"

// Sentinel errors shared by all repositories. Services translate these
// into their own domain errors; handlers never see them directly.
var (
	ErrNotFound      = errors.New("document not found")
	ErrAlreadyExists = errors.New("document already exists")
)
