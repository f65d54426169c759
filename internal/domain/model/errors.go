package model

import "errors"

// Store-level sentinels shared by every repository implementation.
var (
	ErrPetNotFound         = errors.New("pet not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInteractionExists   = errors.New("interaction already exists")
	ErrMatchNotFound       = errors.New("match not found")
	ErrConstraintViolation = errors.New("row violates a table constraint")
)
