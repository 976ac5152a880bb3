package bingo

import "errors"

// Every failure of a registry operation is a precondition violation mapped to
// one of these kinds. Callers match with errors.Is; wrapped messages carry the
// offending detail (column index, number, player). No operation leaves partial
// state behind when it reports one of these.

// Registry / lifecycle errors.
var (
	// ErrNotAdmin rejects callers that are not the configured administrator.
	ErrNotAdmin = errors.New("caller is not the administrator")
	// ErrNotInitialized rejects operations before Initialize succeeded.
	ErrNotInitialized = errors.New("registry not initialized")
	// ErrInvalidStartTime rejects start times not strictly in the future.
	ErrInvalidStartTime = errors.New("start time must be in the future")
	// ErrNameTaken rejects reuse of a game name.
	ErrNameTaken = errors.New("game name already taken")
	// ErrGameNotFound indicates no game under the given name.
	ErrGameNotFound = errors.New("game not found")
	// ErrGameEnded indicates the game already settled or was cancelled.
	ErrGameEnded = errors.New("game already ended")
)

// Draw errors.
var (
	// ErrInvalidNumber rejects numbers outside the 1..75 domain.
	ErrInvalidNumber = errors.New("number out of range")
	// ErrNotStartedYet rejects draws before the game's start time.
	ErrNotStartedYet = errors.New("game has not started yet")
	// ErrDuplicateNumber rejects a number that was already drawn.
	ErrDuplicateNumber = errors.New("number already drawn")
)

// Card shape and value errors.
var (
	// ErrInvalidColumnCount rejects cards without exactly 5 columns.
	ErrInvalidColumnCount = errors.New("card must have 5 columns")
	// ErrInvalidColumnSize rejects columns without exactly 5 entries.
	ErrInvalidColumnSize = errors.New("card column must have 5 entries")
	// ErrInvalidCardValue rejects cells outside their column range, or a
	// non-zero wildcard cell.
	ErrInvalidCardValue = errors.New("card value out of range")
)

// Join and settlement errors.
var (
	// ErrAlreadyStarted rejects joins at or after the start time.
	ErrAlreadyStarted = errors.New("game already started")
	// ErrInsufficientFunds rejects joins the player cannot pay for.
	ErrInsufficientFunds = errors.New("insufficient funds for entry fee")
	// ErrAlreadyJoined rejects a second join by the same player.
	ErrAlreadyJoined = errors.New("player already joined")
	// ErrNotJoined rejects win claims from players without a card.
	ErrNotJoined = errors.New("player has not joined this game")
	// ErrNotWinner rejects win claims whose card is not covered.
	ErrNotWinner = errors.New("card is not covered")
)
