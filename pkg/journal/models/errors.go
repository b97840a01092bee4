package models

import "errors"

// Common errors for journal store operations.
var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Symbol errors
	ErrSymbolNotFound  = errors.New("symbol not found")
	ErrDuplicateSymbol = errors.New("symbol already exists")

	// Trade errors
	ErrTradeNotFound = errors.New("trade not found")

	// Mistake errors
	ErrMistakeNotFound  = errors.New("mistake not found")
	ErrDuplicateMistake = errors.New("mistake already exists")
)
