package types

import "errors"

var (
	// ErrInvalidMarket: bid above ask, width over the level maximum, or a one-sided quote.
	ErrInvalidMarket = errors.New("invalid market")
	// ErrPrecondition marks caller errors; the core never recovers from them.
	ErrPrecondition  = errors.New("precondition violated")
	ErrUnknownStrike = errors.New("unknown strike")
	ErrMissesFair    = errors.New("market does not contain the fair value")
	ErrExhausted     = errors.New("iceberg order exhausted")
)
