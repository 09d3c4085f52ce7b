package order

import (
	"fmt"

	"mmdrill/pkg/price"
	"mmdrill/pkg/structure"
	"mmdrill/pkg/types"

	"github.com/google/uuid"
)

// Order is an immutable limit order on one option.
type Order struct {
	Id     string
	Option *structure.Option
	Side   types.OrderSide
	Price  price.Price
	Size   int
}

func New(opt *structure.Option, side types.OrderSide, px price.Price, size int) (*Order, error) {
	if opt == nil {
		return nil, fmt.Errorf("%w: order without option", types.ErrPrecondition)
	}
	if !side.Valid() {
		return nil, fmt.Errorf("%w: unknown order side '%v'", types.ErrPrecondition, side)
	}
	if !px.IsSet() {
		return nil, fmt.Errorf("%w: order without price", types.ErrPrecondition)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: order size %d must be positive", types.ErrPrecondition, size)
	}
	return &Order{
		Id:     uuid.NewString(),
		Option: opt,
		Side:   side,
		Price:  px,
		Size:   size,
	}, nil
}

// Add aggregates two orders on the same option and side. The combined price is
// the more aggressive one: the higher bid for buys, the lower offer for sells.
func (o *Order) Add(other *Order) (*Order, error) {
	if o.Option.Key() != other.Option.Key() || o.Side != other.Side {
		return nil, fmt.Errorf("%w: cannot add %v to %v", types.ErrPrecondition, other, o)
	}
	px := o.Price
	switch o.Side {
	case types.OrderSideBuy:
		if other.Price.Greater(px) {
			px = other.Price
		}
	case types.OrderSideSell:
		if other.Price.Less(px) {
			px = other.Price
		}
	}
	return &Order{
		Id:     o.Id,
		Option: o.Option,
		Side:   o.Side,
		Price:  px,
		Size:   o.Size + other.Size,
	}, nil
}

func (o *Order) String() string {
	return fmt.Sprintf("%v %d %v @ %v", o.Side.Title(), o.Size, o.Option, o.Price)
}
