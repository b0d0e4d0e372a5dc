package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRegistered  = errors.New("email already registered")
	ErrPermissionDenied = errors.New("permission denied")
	ErrGameNotFound     = errors.New("game not found")
	ErrGameInProgress   = errors.New("user already has a game in progress")
	ErrGameFinished     = errors.New("game already finished")
	ErrUnknownHelpType  = errors.New("unknown help type")
)
