package market

import (
	"fmt"
	"math"
	"strings"

	"mmdrill/pkg/price"
	"mmdrill/pkg/types"
)

// slack allowed over the max width for rounding
const widthTolerance = 0.01

// Market is a two-sided quote. Both sides unset is a null market (not yet quoted).
type Market struct {
	Bid price.Price `json:"bid"` // highest price the quoter pays
	Ask price.Price `json:"ask"` // lowest price the quoter sells at
}

// MaxWidth is the widest market allowed at a price level.
func MaxWidth(px float64) float64 {
	switch {
	case px < 2:
		return 0.25
	case px < 5:
		return 0.4
	case px < 10:
		return 0.8
	default:
		return 1.0
	}
}

func New(bid float64, ask float64) (Market, error) {
	bidNaN, askNaN := math.IsNaN(bid), math.IsNaN(ask)
	if bidNaN && askNaN {
		return Null(), nil
	}
	if bidNaN || askNaN {
		return Null(), fmt.Errorf("%w: one-sided quote %v-%v", types.ErrInvalidMarket, bid, ask)
	}
	if bid > ask {
		return Null(), fmt.Errorf("%w: bid %v exceeds ask %v", types.ErrInvalidMarket, bid, ask)
	}
	if maxWidth := MaxWidth(bid); ask-bid > maxWidth+widthTolerance {
		return Null(), fmt.Errorf("%w: width %.2f over max %.2f (%v-%v)", types.ErrInvalidMarket, ask-bid, maxWidth, bid, ask)
	}
	return Market{Bid: price.New(bid), Ask: price.New(ask)}, nil
}

func Null() Market {
	return Market{Bid: price.Unset(), Ask: price.Unset()}
}

// FromPrice widens a mid by the max width of its level.
func FromPrice(mid float64) (Market, error) {
	return FromPriceWidth(mid, 0)
}

// FromPriceWidth widens a mid by width, capped at the level's max width; width <= 0 picks the max.
func FromPriceWidth(mid float64, width float64) (Market, error) {
	if math.IsNaN(mid) {
		return Null(), nil
	}
	// second pass settles the bucket for mids just above a boundary
	maxWidth := MaxWidth(mid)
	maxWidth = MaxWidth(mid - 0.5*maxWidth)
	if width <= 0 || width > maxWidth {
		width = maxWidth
	}
	tick := price.InferTick(mid)
	bid := math.Max(price.CeilTo(mid-0.5*width, tick), 0)
	ask := price.FloorTo(mid+0.5*width, tick)
	return New(bid, ask)
}

// IsNull reports a market with both sides unset.
func (m Market) IsNull() bool {
	return !m.Bid.IsSet() && !m.Ask.IsSet()
}

// HasNull reports a market with any side unset. Callers check it before Contains or crossing.
func (m Market) HasNull() bool {
	return !m.Bid.IsSet() || !m.Ask.IsSet()
}

func (m Market) Mid() price.Price {
	return price.New((m.Bid.Float64() + m.Ask.Float64()) / 2)
}

func (m Market) Width() float64 {
	return m.Ask.Float64() - m.Bid.Float64()
}

// Contains is inclusive on both sides.
func (m Market) Contains(v float64) bool {
	return m.Bid.Float64() <= v && v <= m.Ask.Float64()
}

// Shift moves both sides by x.
func (m Market) Shift(x float64) (Market, error) {
	return New(m.Bid.Float64()+x, m.Ask.Float64()+x)
}

// Add sums two markets side by side.
func (m Market) Add(o Market) (Market, error) {
	return New(m.Bid.Float64()+o.Bid.Float64(), m.Ask.Float64()+o.Ask.Float64())
}

func (m Market) Equal(o Market) bool {
	return m.Bid.Equal(o.Bid) && m.Ask.Equal(o.Ask)
}

// String renders "bid-ask" in eleven columns, blank when null.
func (m Market) String() string {
	if m.HasNull() {
		return strings.Repeat(" ", 11)
	}
	return fmt.Sprintf("%5.2f-%-5.2f", m.Bid.Float64(), m.Ask.Float64())
}
