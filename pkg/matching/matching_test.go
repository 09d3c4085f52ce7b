package matching

import (
	"errors"
	"testing"

	"mmdrill/pkg/market"
	"mmdrill/pkg/order"
	"mmdrill/pkg/price"
	"mmdrill/pkg/pricing"
	"mmdrill/pkg/structure"
	"mmdrill/pkg/types"

	"pgregory.net/rapid"
)

type stubGrid map[int]pricing.Row

func (g stubGrid) Row(strike int) (pricing.Row, error) {
	row, ok := g[strike]
	if !ok {
		return pricing.Row{}, types.ErrUnknownStrike
	}
	return row, nil
}

var grid = stubGrid{
	100: {Strike: 100, Call: price.New(4.75), Put: price.New(4.65)},
	105: {Strike: 105, Call: price.New(3.10), Put: price.New(8.00)},
}

type fataler interface {
	Fatalf(format string, args ...any)
}

func newOrder(t fataler, strike int, side types.OrderSide, px float64, size int) *order.Order {
	opt, err := structure.NewOption([]int{strike}, structure.Call, grid)
	if err != nil {
		t.Fatalf("fail to build option: %v", err)
	}
	o, err := order.New(opt, side, price.New(px), size)
	if err != nil {
		t.Fatalf("fail to build order: %v", err)
	}
	return o
}

func mustMarket(t fataler, bid, ask float64) market.Market {
	m, err := market.New(bid, ask)
	if err != nil {
		t.Fatalf("fail to build market: %v", err)
	}
	return m
}

func TestIsBookCrossed(t *testing.T) {
	m := mustMarket(t, 4.50, 5.00)
	testCases := []struct {
		side types.OrderSide
		px   float64
		want bool
	}{
		{types.OrderSideBuy, 5.10, true},
		{types.OrderSideSell, 4.90, false},
		{types.OrderSideBuy, 5.00, false},
		{types.OrderSideBuy, 5.01, true},
		{types.OrderSideSell, 4.50, false},
		{types.OrderSideSell, 4.49, true},
		{types.OrderSideBuy, 4.75, false},
	}
	for _, tc := range testCases {
		got, err := IsBookCrossed(newOrder(t, 100, tc.side, tc.px, 10), m)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("%v @ %v against %v: crossed = %v, want %v", tc.side, tc.px, m, got, tc.want)
		}
	}
}

func TestIsBookCrossedPreconditions(t *testing.T) {
	m := mustMarket(t, 4.50, 5.00)
	// sizes are validated at construction; emptied orders still must not match
	for _, size := range []int{0, -5} {
		o := newOrder(t, 100, types.OrderSideBuy, 5.10, 10)
		o.Size = size
		if _, err := IsBookCrossed(o, m); !errors.Is(err, types.ErrPrecondition) {
			t.Errorf("size %d error = %v", size, err)
		}
	}
	if _, err := IsBookCrossed(newOrder(t, 100, types.OrderSideBuy, 5.10, 5), market.Null()); !errors.Is(err, types.ErrPrecondition) {
		t.Errorf("null market error = %v", err)
	}
}

func TestCrossingStrictness(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bidCents := rapid.IntRange(0, 20000).Draw(t, "bid")
		bid := float64(bidCents) / 100
		widthCents := rapid.IntRange(0, int(market.MaxWidth(bid)*100)).Draw(t, "width")
		ask := float64(bidCents+widthCents) / 100
		m := mustMarket(t, bid, ask)

		atAsk, _ := IsBookCrossed(newOrder(t, 100, types.OrderSideBuy, ask, 1), m)
		throughAsk, _ := IsBookCrossed(newOrder(t, 100, types.OrderSideBuy, float64(bidCents+widthCents+1)/100, 1), m)
		if atAsk || !throughAsk {
			t.Fatalf("buy against %v: at ask %v, tick through %v", m, atAsk, throughAsk)
		}
		atBid, _ := IsBookCrossed(newOrder(t, 100, types.OrderSideSell, bid, 1), m)
		throughBid, _ := IsBookCrossed(newOrder(t, 100, types.OrderSideSell, float64(bidCents-1)/100, 1), m)
		if atBid || !throughBid {
			t.Fatalf("sell against %v: at bid %v, tick through %v", m, atBid, throughBid)
		}
	})
}

func TestMatch(t *testing.T) {
	m := mustMarket(t, 4.50, 5.00)

	res, err := Match(newOrder(t, 100, types.OrderSideBuy, 5.10, 50), m)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Crossed() || res.Fill.Price.Float64() != 5.00 || res.Fill.Size != 50 {
		t.Errorf("buy fill = %+v", res.Fill)
	}
	if res.Fill.OrderId != res.Order.Id {
		t.Errorf("fill order id %v, order %v", res.Fill.OrderId, res.Order.Id)
	}

	res, _ = Match(newOrder(t, 100, types.OrderSideSell, 4.40, 20), m)
	if !res.Crossed() || res.Fill.Price.Float64() != 4.50 {
		t.Errorf("sell fill = %+v", res.Fill)
	}

	res, _ = Match(newOrder(t, 100, types.OrderSideSell, 4.90, 20), m)
	if res.Crossed() {
		t.Errorf("resting sell filled: %+v", res.Fill)
	}
}

func TestBookAggregates(t *testing.T) {
	b := NewBook()
	first, _ := b.Append(newOrder(t, 100, types.OrderSideBuy, 4.90, 50))
	merged, err := b.Append(newOrder(t, 100, types.OrderSideBuy, 4.95, 50))
	if err != nil {
		t.Fatal(err)
	}
	if merged.Size != 100 || merged.Price.Float64() != 4.95 || merged.Id != first.Id {
		t.Errorf("merged = %+v", merged)
	}
	b.Append(newOrder(t, 100, types.OrderSideSell, 5.20, 10))
	b.Append(newOrder(t, 105, types.OrderSideBuy, 3.00, 10))
	if b.Len() != 3 {
		t.Fatalf("book len = %d, want 3", b.Len())
	}
	got, ok := b.Get(first.Option.Key(), types.OrderSideBuy)
	if !ok || got.Size != 100 {
		t.Errorf("get = %+v, %v", got, ok)
	}
	orders := b.Orders()
	if orders[0].Option.Key() != "100 Calls" || orders[0].Side != types.OrderSideBuy {
		t.Errorf("first resting order = %v", orders[0])
	}
	b.Clear()
	if b.Len() != 0 {
		t.Errorf("book len after clear = %d", b.Len())
	}
}
