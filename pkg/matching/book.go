package matching

import (
	"fmt"
	"sort"

	"mmdrill/pkg/order"
	"mmdrill/pkg/types"
)

// Book keeps resting orders aggregated per option and side.
type Book struct {
	orders map[string]*order.Order
}

func NewBook() *Book {
	return &Book{orders: map[string]*order.Order{}}
}

func bookKey(optionKey string, side types.OrderSide) string {
	return fmt.Sprintf("%s|%s", optionKey, side)
}

// Append adds o to the resting order for the same option and side, if any.
func (b *Book) Append(o *order.Order) (*order.Order, error) {
	key := bookKey(o.Option.Key(), o.Side)
	if resting, ok := b.orders[key]; ok {
		merged, err := resting.Add(o)
		if err != nil {
			return nil, err
		}
		b.orders[key] = merged
		return merged, nil
	}
	b.orders[key] = o
	return o, nil
}

func (b *Book) Get(optionKey string, side types.OrderSide) (*order.Order, bool) {
	o, ok := b.orders[bookKey(optionKey, side)]
	return o, ok
}

// Orders lists resting orders ordered by option then side.
func (b *Book) Orders() []*order.Order {
	keys := make([]string, 0, len(b.orders))
	for k := range b.orders {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	orders := make([]*order.Order, len(keys))
	for i, k := range keys {
		orders[i] = b.orders[k]
	}
	return orders
}

func (b *Book) Len() int {
	return len(b.orders)
}

func (b *Book) Clear() {
	b.orders = map[string]*order.Order{}
}
