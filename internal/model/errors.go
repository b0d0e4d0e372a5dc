package model

import "errors"

// Core game errors. Wrong answers and time-limit expiry are not errors,
// they are regular terminal transitions reported through return values.
var (
	// ErrNotEnoughQuestions is returned when a difficulty level has no
	// unused question left while assembling a game.
	ErrNotEnoughQuestions = errors.New("not enough questions for level")

	// ErrGameCreation wraps ErrNotEnoughQuestions at the game factory level.
	ErrGameCreation = errors.New("game creation failed")

	// ErrInvalidKey reports an answer key outside {a,b,c,d}.
	ErrInvalidKey = errors.New("invalid answer key")

	// ErrInvalidOperation reports a call the current game state forbids,
	// e.g. cashing out with no correct answer or on a finished game.
	ErrInvalidOperation = errors.New("invalid operation for current game state")
)
