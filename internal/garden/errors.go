package garden

import "errors"

var (
	// ErrNegativeDelta reports a reward or revival with a negative delta.
	ErrNegativeDelta = errors.New("garden: negative delta")
	// ErrNegativeSunDrops reports a negative cumulative sun drop count.
	ErrNegativeSunDrops = errors.New("garden: negative sun drops")
	// ErrTimeReversed reports a refresh time before the last applied one.
	ErrTimeReversed = errors.New("garden: refresh time before last refresh")
	// ErrNotDead reports a revival attempt on a living tree.
	ErrNotDead = errors.New("garden: tree is not dead")
	// ErrGraceExpired reports a revival attempt after the grace window.
	ErrGraceExpired = errors.New("garden: revival grace window expired")
	// ErrInvalidState reports a tree state that cannot be processed.
	ErrInvalidState = errors.New("garden: invalid tree state")
)
