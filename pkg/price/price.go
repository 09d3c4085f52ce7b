package price

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultTick is the tick a Price rounds to when none is given.
const DefaultTick = 0.01

// decimal places kept before snapping to a tick, absorbs binary float noise
const places = 8

// Price is an immutable monetary value snapped to its tick. NaN means "no quote".
type Price struct {
	v    float64
	tick float64
}

func New(v float64) Price {
	return WithTick(v, DefaultTick)
}

func WithTick(v float64, tick float64) Price {
	return Price{v: RoundTo(v, tick), tick: tick}
}

// ForOption infers the tick from the price level.
func ForOption(v float64) Price {
	return WithTick(v, InferTick(v))
}

func Unset() Price {
	return Price{v: math.NaN(), tick: DefaultTick}
}

// InferTick is the smallest option price increment at a price level.
func InferTick(px float64) float64 {
	if px < 2 {
		return 0.05
	}
	return 0.10
}

func RoundTo(v float64, tick float64) float64 {
	return snap(v, tick, func(d decimal.Decimal) decimal.Decimal { return d.Round(0) })
}

func CeilTo(v float64, tick float64) float64 {
	return snap(v, tick, decimal.Decimal.Ceil)
}

func FloorTo(v float64, tick float64) float64 {
	return snap(v, tick, decimal.Decimal.Floor)
}

func snap(v float64, tick float64, fn func(decimal.Decimal) decimal.Decimal) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || tick <= 0 {
		return v
	}
	t := decimal.NewFromFloat(tick)
	steps := fn(decimal.NewFromFloat(v).Round(places).Div(t))
	return steps.Mul(t).Round(places).InexactFloat64()
}

func (p Price) Float64() float64 {
	return p.v
}

func (p Price) Tick() float64 {
	if p.tick <= 0 {
		return DefaultTick
	}
	return p.tick
}

func (p Price) IsSet() bool {
	return !math.IsNaN(p.v)
}

func (p Price) Round() float64 { return RoundTo(p.v, p.Tick()) }
func (p Price) Ceil() float64  { return CeilTo(p.v, p.Tick()) }
func (p Price) Floor() float64 { return FloorTo(p.v, p.Tick()) }

// arithmetic keeps the receiver's tick and re-rounds

func (p Price) Add(o Price) Price {
	return WithTick(p.v+o.v, p.Tick())
}

func (p Price) Sub(o Price) Price {
	return WithTick(p.v-o.v, p.Tick())
}

func (p Price) Mul(f float64) Price {
	return WithTick(p.v*f, p.Tick())
}

func (p Price) Div(f float64) Price {
	return WithTick(p.v/f, p.Tick())
}

func (p Price) Abs() Price {
	return WithTick(math.Abs(p.v), p.Tick())
}

func (p Price) Less(o Price) bool    { return p.v < o.v }
func (p Price) Greater(o Price) bool { return p.v > o.v }

// Equal treats two unset prices as equal.
func (p Price) Equal(o Price) bool {
	if !p.IsSet() || !o.IsSet() {
		return p.IsSet() == o.IsSet()
	}
	return p.v == o.v
}

// String takes five columns; an unset price renders blank.
func (p Price) String() string {
	if !p.IsSet() {
		return strings.Repeat(" ", 5)
	}
	return fmt.Sprintf("%5.2f", p.v)
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(p.v)
}

func (p *Price) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Unset()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("fail to decode price '%s': %w", data, err)
	}
	*p = New(v)
	return nil
}

// Ptr is nil for an unset price.
func (p Price) Ptr() *float64 {
	if !p.IsSet() {
		return nil
	}
	v := p.v
	return &v
}
