package matching

import (
	"fmt"

	"mmdrill/pkg/market"
	"mmdrill/pkg/order"
	"mmdrill/pkg/price"
	"mmdrill/pkg/types"
)

// IsBookCrossed reports whether o trades against m. A buy crosses above the ask
// and a sell below the bid; resting at the touch does not trade.
func IsBookCrossed(o *order.Order, m market.Market) (bool, error) {
	if o.Size <= 0 {
		return false, fmt.Errorf("%w: order size %d must be positive", types.ErrPrecondition, o.Size)
	}
	if m.HasNull() {
		return false, fmt.Errorf("%w: cannot match against an unquoted market", types.ErrPrecondition)
	}
	switch o.Side {
	case types.OrderSideBuy:
		return o.Price.Greater(m.Ask), nil
	case types.OrderSideSell:
		return o.Price.Less(m.Bid), nil
	default:
		return false, fmt.Errorf("%w: unknown order side '%v'", types.ErrPrecondition, o.Side)
	}
}

// Fill is a trade of the order against the quoting party, priced at the touched side.
type Fill struct {
	OrderId string
	Side    types.OrderSide
	Price   price.Price
	Size    int
}

func (f *Fill) String() string {
	return fmt.Sprintf("%v %d @ %v", f.Side.Title(), f.Size, f.Price)
}

// Result is the outcome of one matching attempt. Fill is nil when the order rests.
type Result struct {
	Order *order.Order
	Fill  *Fill
}

func (r Result) Crossed() bool {
	return r.Fill != nil
}

// Match fills o at the ask for a buy and at the bid for a sell when the book is crossed.
func Match(o *order.Order, m market.Market) (Result, error) {
	crossed, err := IsBookCrossed(o, m)
	if err != nil {
		return Result{}, err
	}
	if !crossed {
		return Result{Order: o}, nil
	}
	px := m.Ask
	if o.Side == types.OrderSideSell {
		px = m.Bid
	}
	return Result{
		Order: o,
		Fill:  &Fill{OrderId: o.Id, Side: o.Side, Price: px, Size: o.Size},
	}, nil
}
