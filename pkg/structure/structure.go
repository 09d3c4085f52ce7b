package structure

import (
	"fmt"
	"math"
	"strings"

	"mmdrill/pkg/pricing"
	"mmdrill/pkg/types"
)

// Structure is a named payoff over one or two strikes.
type Structure int

const (
	Call Structure = iota
	Put
	Combo
	Straddle
	CallSpread
	PutSpread
	Risky
	Strangle
)

// All lists every structure in declaration order.
var All = []Structure{Call, Put, Combo, Straddle, CallSpread, PutSpread, Risky, Strangle}

func (s Structure) String() string {
	switch s {
	case Call:
		return "Calls"
	case Put:
		return "Puts"
	case Combo:
		return "Combo"
	case Straddle:
		return "Straddle"
	case CallSpread:
		return "Callspread"
	case PutSpread:
		return "Putspread"
	case Risky:
		return "Risky"
	case Strangle:
		return "Strangle"
	default:
		return fmt.Sprintf("Structure(%d)", int(s))
	}
}

// Arity is the number of strikes the structure needs.
func (s Structure) Arity() int {
	switch s {
	case Call, Put, Combo, Straddle:
		return 1
	case CallSpread, PutSpread, Risky, Strangle:
		return 2
	default:
		return 0
	}
}

func Parse(name string) (Structure, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, s := range All {
		if strings.ToLower(s.String()) == key || strings.TrimSuffix(strings.ToLower(s.String()), "s") == key {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown structure '%v'", types.ErrPrecondition, name)
}

// value applies the payoff to rows sorted by ascending strike.
func (s Structure) value(rows []pricing.Row) (float64, error) {
	if len(rows) != s.Arity() {
		return math.NaN(), fmt.Errorf("%w: %v needs %d rows, got %d", types.ErrPrecondition, s, s.Arity(), len(rows))
	}
	switch s {
	case Call:
		return rows[0].Call.Float64(), nil
	case Put:
		return rows[0].Put.Float64(), nil
	case Combo:
		return rows[0].Call.Float64() - rows[0].Put.Float64(), nil
	case Straddle:
		return rows[0].Call.Float64() + rows[0].Put.Float64(), nil
	case CallSpread:
		return rows[0].Call.Float64() - rows[1].Call.Float64(), nil
	case PutSpread:
		return rows[1].Put.Float64() - rows[0].Put.Float64(), nil
	case Risky:
		return math.Abs(rows[1].Put.Float64() - rows[0].Call.Float64()), nil
	case Strangle:
		return rows[1].Call.Float64() + rows[0].Put.Float64(), nil
	default:
		return math.NaN(), fmt.Errorf("%w: unknown structure %d", types.ErrPrecondition, int(s))
	}
}
