package board

import (
	"fmt"

	"mmdrill/pkg/price"
	"mmdrill/pkg/pricing"
	"mmdrill/pkg/structure"
	"mmdrill/pkg/types"
)

// Board is a fair-value board: spot, rc and one priced row per grid strike.
type Board struct {
	Spot price.Price
	RC   price.Price

	model *pricing.Model
	rows  []pricing.Row
}

func New(spot float64, params pricing.Params) (*Board, error) {
	model, err := pricing.NewModel(params)
	if err != nil {
		return nil, err
	}
	b := &Board{model: model}
	if err := b.Reprice(spot); err != nil {
		return nil, err
	}
	return b, nil
}

// Reprice regenerates the grid and every row for a new spot.
func (b *Board) Reprice(spot float64) error {
	rows, rc, err := b.model.Rows(spot)
	if err != nil {
		return fmt.Errorf("fail to price board at %v: %w", spot, err)
	}
	b.Spot = price.New(spot)
	b.RC = rc
	b.rows = rows
	return nil
}

func (b *Board) Params() pricing.Params {
	return b.model.Params()
}

// Strikes derives the grid from the current spot.
func (b *Board) Strikes() []int {
	return pricing.Strikes(b.Spot.Float64(), b.model.Params().Box)
}

// Rows returns a copy of the rows in ascending strike order.
func (b *Board) Rows() []pricing.Row {
	return append([]pricing.Row(nil), b.rows...)
}

func (b *Board) Row(strike int) (pricing.Row, error) {
	for _, r := range b.rows {
		if r.Strike == strike {
			return r, nil
		}
	}
	return pricing.Row{}, fmt.Errorf("%w: %w: %d not on grid %v", types.ErrPrecondition, types.ErrUnknownStrike, strike, b.Strikes())
}

// RowAt resolves a row offset (negative counts from the top) through the current grid.
func (b *Board) RowAt(offset int) (pricing.Row, error) {
	strike, err := strikeAt(b.Strikes(), offset)
	if err != nil {
		return pricing.Row{}, err
	}
	return b.Row(strike)
}

func (b *Board) Loc(strike int, col types.Column) (price.Price, error) {
	row, err := b.Row(strike)
	if err != nil {
		return price.Unset(), err
	}
	return row.Cell(col)
}

func (b *Board) ILoc(offset int, col types.Column) (price.Price, error) {
	row, err := b.RowAt(offset)
	if err != nil {
		return price.Unset(), err
	}
	return row.Cell(col)
}

// At reads by offset for keys inside the grid size and by strike otherwise.
func (b *Board) At(key int, col types.Column) (price.Price, error) {
	if key < pricing.NumStrikes {
		return b.ILoc(key, col)
	}
	return b.Loc(key, col)
}

// Straddle is the middle-strike straddle, the board's headline value.
func (b *Board) Straddle() *structure.Option {
	atm := b.Strikes()[pricing.NumStrikes/2]
	// one strike always satisfies the straddle's arity
	opt, _ := structure.NewOption([]int{atm}, structure.Straddle, b)
	return opt
}

// Value prices the straddle.
func (b *Board) Value() (price.Price, error) {
	return b.Straddle().Price()
}

// Copy is independent of b; rows are plain values.
func (b *Board) Copy() *Board {
	return &Board{
		Spot:  b.Spot,
		RC:    b.RC,
		model: b.model,
		rows:  b.Rows(),
	}
}

func strikeAt(strikes []int, offset int) (int, error) {
	i := offset
	if i < 0 {
		i += len(strikes)
	}
	if i < 0 || i >= len(strikes) {
		return 0, fmt.Errorf("%w: row offset %d outside grid of %d", types.ErrPrecondition, offset, len(strikes))
	}
	return strikes[i], nil
}
