package kanban

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMove is returned for a move whose card or column does not exist.
	// Such a move never reaches the remote operation.
	ErrInvalidMove = errors.New("invalid move")

	// ErrMoveInFlight is returned when a card already has an unconfirmed move.
	ErrMoveInFlight = errors.New("move already in flight for card")

	// ErrRemoteMoveFailed matches every RemoteMoveError.
	ErrRemoteMoveFailed = errors.New("remote move failed")
)

func invalidMove(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidMove, fmt.Sprintf(format, args...))
}

// RemoteMoveError reports a move the backend did not confirm. The board has
// already been rolled back when it is returned.
type RemoteMoveError struct {
	CardID string
	From   Status
	To     Status
	Err    error
}

func (e *RemoteMoveError) Error() string {
	return fmt.Sprintf("move card %s from %s to %s: %v", e.CardID, e.From, e.To, e.Err)
}

func (e *RemoteMoveError) Unwrap() []error {
	return []error{ErrRemoteMoveFailed, e.Err}
}
