package board

import (
	"fmt"

	"mmdrill/pkg/market"
	"mmdrill/pkg/price"
	"mmdrill/pkg/structure"
	"mmdrill/pkg/types"
)

// Widths are the default market widths for cells that do not use the level maximum.
type Widths struct {
	Spot     float64 `yaml:"spot" json:"spot"`
	Straddle float64 `yaml:"straddle" json:"straddle"`
	Anchor   float64 `yaml:"anchor" json:"anchor"` // seeded public board cells
}

var DefaultWidths = Widths{Spot: 0.20, Straddle: 0.30, Anchor: 0.20}

// MarketRow is a pricing row with every price widened into a market.
type MarketRow struct {
	Strike      int
	Call        market.Market
	Put         market.Market
	PutAndStock market.Market
	BuyWrite    market.Market
	CallSpread  market.Market
	CallDelta   int
}

func (r MarketRow) Cell(col types.Column) (market.Market, error) {
	switch col {
	case types.ColumnCall:
		return r.Call, nil
	case types.ColumnPut:
		return r.Put, nil
	case types.ColumnPutAndStock:
		return r.PutAndStock, nil
	case types.ColumnBuyWrite:
		return r.BuyWrite, nil
	case types.ColumnCallSpread:
		return r.CallSpread, nil
	default:
		return market.Null(), fmt.Errorf("%w: unknown column '%v'", types.ErrPrecondition, col)
	}
}

func (r *MarketRow) setCell(col types.Column, m market.Market) error {
	switch col {
	case types.ColumnCall:
		r.Call = m
	case types.ColumnPut:
		r.Put = m
	case types.ColumnPutAndStock:
		r.PutAndStock = m
	case types.ColumnBuyWrite:
		r.BuyWrite = m
	case types.ColumnCallSpread:
		r.CallSpread = m
	default:
		return fmt.Errorf("%w: unknown column '%v'", types.ErrPrecondition, col)
	}
	return nil
}

// MarketBoard is a board of markets tied to the fair board it was derived from.
type MarketBoard struct {
	Spot     market.Market
	RC       price.Price
	Straddle market.Market

	widths Widths
	rows   []MarketRow
	fair   *Board
}

// NewMarketBoard widens every fair value of a private copy of fair.
func NewMarketBoard(fair *Board, widths Widths) (*MarketBoard, error) {
	fair = fair.Copy()
	spot, err := market.FromPriceWidth(fair.Spot.Float64(), widths.Spot)
	if err != nil {
		return nil, fmt.Errorf("fail to quote spot: %w", err)
	}
	value, err := fair.Value()
	if err != nil {
		return nil, err
	}
	straddle, err := market.FromPriceWidth(value.Float64(), widths.Straddle)
	if err != nil {
		return nil, fmt.Errorf("fail to quote straddle: %w", err)
	}

	fairRows := fair.Rows()
	rows := make([]MarketRow, len(fairRows))
	for i, fr := range fairRows {
		rows[i] = MarketRow{Strike: fr.Strike, CallDelta: fr.CallDelta}
		for _, col := range types.PricedColumns {
			px, _ := fr.Cell(col)
			m, err := market.FromPrice(px.Float64())
			if err != nil {
				return nil, fmt.Errorf("fail to quote %d %v: %w", fr.Strike, col, err)
			}
			if err := rows[i].setCell(col, m); err != nil {
				return nil, err
			}
		}
	}
	return &MarketBoard{
		Spot:     spot,
		RC:       fair.RC,
		Straddle: straddle,
		widths:   widths,
		rows:     rows,
		fair:     fair,
	}, nil
}

// Fair returns a copy of the originating fair board.
func (mb *MarketBoard) Fair() *Board {
	return mb.fair.Copy()
}

func (mb *MarketBoard) Strikes() []int {
	return mb.fair.Strikes()
}

// StraddleOption is the headline straddle priced off the fair board.
func (mb *MarketBoard) StraddleOption() *structure.Option {
	return mb.fair.Straddle()
}

func (mb *MarketBoard) Rows() []MarketRow {
	return append([]MarketRow(nil), mb.rows...)
}

func (mb *MarketBoard) index(strike int) (int, error) {
	for i, r := range mb.rows {
		if r.Strike == strike {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %w: %d not on grid %v", types.ErrPrecondition, types.ErrUnknownStrike, strike, mb.Strikes())
}

func (mb *MarketBoard) Row(strike int) (MarketRow, error) {
	i, err := mb.index(strike)
	if err != nil {
		return MarketRow{}, err
	}
	return mb.rows[i], nil
}

func (mb *MarketBoard) Loc(strike int, col types.Column) (market.Market, error) {
	row, err := mb.Row(strike)
	if err != nil {
		return market.Null(), err
	}
	return row.Cell(col)
}

func (mb *MarketBoard) ILoc(offset int, col types.Column) (market.Market, error) {
	strike, err := strikeAt(mb.Strikes(), offset)
	if err != nil {
		return market.Null(), err
	}
	return mb.Loc(strike, col)
}

// Set writes one cell.
func (mb *MarketBoard) Set(strike int, col types.Column, m market.Market) error {
	i, err := mb.index(strike)
	if err != nil {
		return err
	}
	return mb.rows[i].setCell(col, m)
}

func (mb *MarketBoard) SetAt(offset int, col types.Column, m market.Market) error {
	strike, err := strikeAt(mb.Strikes(), offset)
	if err != nil {
		return err
	}
	return mb.Set(strike, col, m)
}

// Quote writes a human market after checking it contains the fair value.
func (mb *MarketBoard) Quote(strike int, col types.Column, m market.Market) error {
	if m.HasNull() {
		return fmt.Errorf("%w: empty quote for %d %v", types.ErrInvalidMarket, strike, col)
	}
	fair, err := mb.fair.Loc(strike, col)
	if err != nil {
		return err
	}
	if !fair.IsSet() {
		return fmt.Errorf("%w: %d %v has no fair value", types.ErrPrecondition, strike, col)
	}
	if !m.Contains(fair.Float64()) {
		return fmt.Errorf("%w: %v against %d %v", types.ErrMissesFair, m, strike, col)
	}
	return mb.Set(strike, col, m)
}

// Missing lists strikes whose cell in col is still unquoted.
func (mb *MarketBoard) Missing(col types.Column) []int {
	var strikes []int
	for _, r := range mb.rows {
		m, err := r.Cell(col)
		if err == nil && m.HasNull() {
			strikes = append(strikes, r.Strike)
		}
	}
	return strikes
}

// Clear returns a copy with every cell nulled; spot, rc and straddle stay quoted.
func (mb *MarketBoard) Clear() *MarketBoard {
	cleared := mb.Copy()
	for i := range cleared.rows {
		for _, col := range types.PricedColumns {
			_ = cleared.rows[i].setCell(col, market.Null())
		}
	}
	return cleared
}

// SeedAnchors returns a copy with the lowest buywrite and the highest put&stock
// quoted from fair at the anchor width.
func (mb *MarketBoard) SeedAnchors() (*MarketBoard, error) {
	seeded := mb.Copy()
	anchors := []struct {
		offset int
		col    types.Column
	}{
		{0, types.ColumnBuyWrite},
		{-1, types.ColumnPutAndStock},
	}
	for _, a := range anchors {
		fair, err := seeded.fair.ILoc(a.offset, a.col)
		if err != nil {
			return nil, err
		}
		m, err := market.FromPriceWidth(fair.Float64(), seeded.widths.Anchor)
		if err != nil {
			return nil, fmt.Errorf("fail to seed %v: %w", a.col, err)
		}
		if err := seeded.SetAt(a.offset, a.col, m); err != nil {
			return nil, err
		}
	}
	return seeded, nil
}

// Copy is independent of mb, including the fair board it holds.
func (mb *MarketBoard) Copy() *MarketBoard {
	return &MarketBoard{
		Spot:     mb.Spot,
		RC:       mb.RC,
		Straddle: mb.Straddle,
		widths:   mb.widths,
		rows:     mb.Rows(),
		fair:     mb.fair.Copy(),
	}
}

// Public builds the board a human starts from: cleared, then anchored.
func Public(fair *Board, widths Widths) (*MarketBoard, error) {
	mb, err := NewMarketBoard(fair, widths)
	if err != nil {
		return nil, err
	}
	return mb.Clear().SeedAnchors()
}

var _ structure.Grid = (*Board)(nil)
