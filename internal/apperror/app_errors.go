package apperror

import "errors"

var (
	ErrNotFound          = errors.New("game not found")
	ErrGameFull          = errors.New("game is full")
	ErrExhausted         = errors.New("all numbers have been called")
	ErrNotCalled         = errors.New("number has not been called")
	ErrInvalidState      = errors.New("action is not allowed in the current game state")
	ErrPersistence       = errors.New("persistence failure")
	ErrDeserialization   = errors.New("malformed game document")
	ErrInvalidCell       = errors.New("invalid cell")
	ErrGameAlreadyExists = errors.New("game already exists")
	ErrPlayerNotFound    = errors.New("player not found")
)
