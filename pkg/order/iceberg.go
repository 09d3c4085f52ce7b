package order

import (
	"fmt"
	"math/rand"

	"mmdrill/pkg/price"
	"mmdrill/pkg/structure"
	"mmdrill/pkg/types"
)

// IcebergOrder hides its total and shows one clip of at most Peak at a time.
type IcebergOrder struct {
	Option     *structure.Option
	Side       types.OrderSide
	Aggression float64
	Peak       int
	Total      int
}

// Choices are the values a random iceberg draws from.
type Choices struct {
	Aggressions []float64 `yaml:"aggressions" json:"aggressions"`
	Peaks       []int     `yaml:"peaks" json:"peaks"`
	Totals      []int     `yaml:"totals" json:"totals"`
}

var DefaultChoices = Choices{
	Aggressions: []float64{0.05, 0.1, 0.2},
	Peaks:       []int{50, 100, 200, 500},
	Totals:      []int{200, 500, 1000, 2000},
}

func NewIceberg(opt *structure.Option, side types.OrderSide, aggression float64, peak int, total int) (*IcebergOrder, error) {
	if opt == nil {
		return nil, fmt.Errorf("%w: iceberg without option", types.ErrPrecondition)
	}
	if !side.Valid() {
		return nil, fmt.Errorf("%w: unknown order side '%v'", types.ErrPrecondition, side)
	}
	if aggression <= 0 || aggression >= 1 {
		return nil, fmt.Errorf("%w: aggression %v outside (0,1)", types.ErrPrecondition, aggression)
	}
	if peak <= 0 || total <= 0 {
		return nil, fmt.Errorf("%w: peak %d and total %d must be positive", types.ErrPrecondition, peak, total)
	}
	return &IcebergOrder{
		Option:     opt,
		Side:       side,
		Aggression: aggression,
		Peak:       peak,
		Total:      total,
	}, nil
}

func RandIceberg(opt *structure.Option, choices Choices, rng *rand.Rand) (*IcebergOrder, error) {
	if len(choices.Aggressions) == 0 || len(choices.Peaks) == 0 || len(choices.Totals) == 0 {
		return nil, fmt.Errorf("%w: empty iceberg choices", types.ErrPrecondition)
	}
	sides := []types.OrderSide{types.OrderSideBuy, types.OrderSideSell}
	return NewIceberg(
		opt,
		sides[rng.Intn(len(sides))],
		choices.Aggressions[rng.Intn(len(choices.Aggressions))],
		choices.Peaks[rng.Intn(len(choices.Peaks))],
		choices.Totals[rng.Intn(len(choices.Totals))],
	)
}

// LimitPrice is the option value pushed through fair by the aggression.
func (ice *IcebergOrder) LimitPrice() (price.Price, error) {
	fair, err := ice.Option.Price()
	if err != nil {
		return price.Unset(), err
	}
	return fair.Mul(1 + float64(ice.Side.Sign())*ice.Aggression), nil
}

// Pop releases one clip. size <= 0 means a full peak; the clip never exceeds
// what is left, so Total stops at zero.
func (ice *IcebergOrder) Pop(size int) (*Order, error) {
	if ice.IsEmpty() {
		return nil, fmt.Errorf("%w: %v", types.ErrExhausted, ice)
	}
	if size <= 0 {
		size = ice.Peak
	}
	size = min(size, ice.Total)
	px, err := ice.LimitPrice()
	if err != nil {
		return nil, fmt.Errorf("fail to price clip: %w", err)
	}
	o, err := New(ice.Option, ice.Side, px, size)
	if err != nil {
		return nil, err
	}
	ice.Total -= size
	return o, nil
}

func (ice *IcebergOrder) IsEmpty() bool {
	return ice.Total <= 0
}

// String is what the counterparty asks for; size and side stay hidden.
func (ice *IcebergOrder) String() string {
	return fmt.Sprintf("Can I get a market in %v?", ice.Option)
}
