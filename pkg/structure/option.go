package structure

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"mmdrill/pkg/price"
	"mmdrill/pkg/pricing"
	"mmdrill/pkg/types"
)

// Grid resolves fair-value rows by strike.
type Grid interface {
	Row(strike int) (pricing.Row, error)
}

// Option is a structure anchored at strikes on a grid.
type Option struct {
	strikes   []int
	structure Structure
	grid      Grid
}

func NewOption(strikes []int, s Structure, grid Grid) (*Option, error) {
	if len(strikes) != s.Arity() {
		return nil, fmt.Errorf("%w: %v needs %d strikes, got %v", types.ErrPrecondition, s, s.Arity(), strikes)
	}
	if !sort.IntsAreSorted(strikes) {
		return nil, fmt.Errorf("%w: strikes %v not ascending", types.ErrPrecondition, strikes)
	}
	if grid == nil {
		return nil, fmt.Errorf("%w: option needs a grid", types.ErrPrecondition)
	}
	return &Option{
		strikes:   append([]int(nil), strikes...),
		structure: s,
		grid:      grid,
	}, nil
}

// Rand picks a single strike call, put or combo from strikes.
func Rand(grid Grid, strikes []int, rng *rand.Rand) (*Option, error) {
	if len(strikes) == 0 {
		return nil, fmt.Errorf("%w: no strikes to choose from", types.ErrPrecondition)
	}
	kinds := []Structure{Call, Put, Combo}
	strike := strikes[rng.Intn(len(strikes))]
	return NewOption([]int{strike}, kinds[rng.Intn(len(kinds))], grid)
}

func (o *Option) Strikes() []int {
	return append([]int(nil), o.strikes...)
}

func (o *Option) Structure() Structure {
	return o.structure
}

func (o *Option) Grid() Grid {
	return o.grid
}

// Price evaluates the structure against the grid's current rows.
func (o *Option) Price() (price.Price, error) {
	rows := make([]pricing.Row, len(o.strikes))
	for i, strike := range o.strikes {
		row, err := o.grid.Row(strike)
		if err != nil {
			return price.Unset(), fmt.Errorf("fail to price %v: %w", o, err)
		}
		rows[i] = row
	}
	v, err := o.structure.value(rows)
	if err != nil {
		return price.Unset(), err
	}
	return price.New(v), nil
}

// Key identifies the option independent of its grid.
func (o *Option) Key() string {
	return o.String()
}

func (o *Option) String() string {
	parts := make([]string, len(o.strikes))
	for i, k := range o.strikes {
		parts[i] = strconv.Itoa(k)
	}
	return strings.Join(parts, "/") + " " + o.structure.String()
}
