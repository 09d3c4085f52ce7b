package strategy

import (
	"errors"
	"math/rand"
	"testing"

	"mmdrill/pkg/matching"
	"mmdrill/pkg/order"
	"mmdrill/pkg/price"
	"mmdrill/pkg/pricing"
	"mmdrill/pkg/structure"
	"mmdrill/pkg/types"
)

type stubGrid map[int]pricing.Row

func (g stubGrid) Row(strike int) (pricing.Row, error) {
	row, ok := g[strike]
	if !ok {
		return pricing.Row{}, types.ErrUnknownStrike
	}
	return row, nil
}

func TestNew(t *testing.T) {
	grid := stubGrid{100: {Strike: 100, Call: price.New(8.86), Put: price.New(8.76)}}
	opt, _ := structure.NewOption([]int{100}, structure.Put, grid)
	rng := rand.New(rand.NewSource(1))

	strat, err := New(types.StrategyIceberg, opt, order.DefaultChoices, matching.NewBook(), rng)
	if err != nil {
		t.Fatal(err)
	}
	if strat.Name() != types.StrategyIceberg || strat.Done() {
		t.Errorf("strategy = %v, done %v", strat.Name(), strat.Done())
	}

	if _, err := New(types.StrategyName("twap"), opt, order.DefaultChoices, matching.NewBook(), rng); !errors.Is(err, types.ErrPrecondition) {
		t.Errorf("unknown strategy error = %v", err)
	}
	if _, err := New(types.StrategyIceberg, opt, order.Choices{}, matching.NewBook(), rng); !errors.Is(err, types.ErrPrecondition) {
		t.Errorf("empty choices error = %v", err)
	}
	if _, err := New(types.StrategyIceberg, opt, order.DefaultChoices, nil, rng); !errors.Is(err, types.ErrPrecondition) {
		t.Errorf("nil book error = %v", err)
	}
}
