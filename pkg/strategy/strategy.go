package strategy

import (
	"fmt"
	"math/rand"

	"mmdrill/pkg/market"
	"mmdrill/pkg/matching"
	"mmdrill/pkg/order"
	"mmdrill/pkg/strategy/iceberg"
	"mmdrill/pkg/structure"
	"mmdrill/pkg/types"
)

// Strategy is a simulated counterparty trading against the human's markets.
type Strategy interface {
	Id() string
	Name() types.StrategyName
	Validate() error
	// Request is what the counterparty asks the human to quote.
	Request() string
	Respond(m market.Market) (matching.Result, error)
	Done() bool
	Shutdown() error
}

// New draws a counterparty of the given kind on opt; resting clips go to book.
func New(name types.StrategyName, opt *structure.Option, choices order.Choices, book *matching.Book, rng *rand.Rand) (Strategy, error) {
	var strat Strategy
	switch name {
	case types.StrategyIceberg:
		ice, err := order.RandIceberg(opt, choices, rng)
		if err != nil {
			return nil, fmt.Errorf("fail to draw iceberg: %w", err)
		}
		strat = iceberg.New(ice, book)
	default:
		return nil, fmt.Errorf("%w: unknown strategy '%v'", types.ErrPrecondition, name)
	}
	if err := strat.Validate(); err != nil {
		return nil, err
	}
	return strat, nil
}
