package blackjack

import (
	"errors"
	"fmt"
)

var (
	ErrSessionExists            = errors.New("a session already exists for this player")
	ErrGameOver                 = errors.New("the game is over")
	ErrGameInProgress           = errors.New("the game is not over yet")
	ErrNoCard                   = errors.New("no card was able to be drawn")
	ErrPlayerAlreadyPressedStay = errors.New("player already pressed stay")
	ErrDealerAlreadyPressedStay = errors.New("dealer already pressed stay")
	ErrPlayerAlreadyWon         = errors.New("player already won")
	ErrPlayerAlreadyLost        = errors.New("player already lost")
	ErrDealerAlreadyWon         = errors.New("dealer already won")
	ErrDealerAlreadyLost        = errors.New("dealer already lost")
	ErrPlayerNotDoneYet         = errors.New("player is not done yet")
)

// InvalidResultCountError reports a violated storage invariant:
// anything other than exactly one record for a player id.
type InvalidResultCountError struct {
	Count int
}

func (e *InvalidResultCountError) Error() string {
	return fmt.Sprintf("expected exactly 1 session record, found %d", e.Count)
}

// CardParseError reports a malformed card token inside a persisted
// record, which means the stored session is corrupt.
type CardParseError struct {
	Field string
	Err   error
}

func (e *CardParseError) Error() string {
	return fmt.Sprintf("corrupt card token in %s: %v", e.Field, e.Err)
}

func (e *CardParseError) Unwrap() error {
	return e.Err
}

// StorageError wraps a failure from the session record store
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("session store %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
