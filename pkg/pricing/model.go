package pricing

import (
	"fmt"
	"math"

	"mmdrill/pkg/price"
	"mmdrill/pkg/types"

	"github.com/chobie/go-gaussian"
	"gonum.org/v1/gonum/stat"
)

// Row holds the fair values at one strike.
type Row struct {
	Strike      int
	Call        price.Price
	Put         price.Price
	PutAndStock price.Price // call - rc
	BuyWrite    price.Price // put + rc
	CallSpread  price.Price // call minus next strike's call; unset on the top strike
	CallDelta   int         // percent
}

// Cell reads one price column of the row.
func (r Row) Cell(col types.Column) (price.Price, error) {
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
		return price.Unset(), fmt.Errorf("%w: unknown column '%v'", types.ErrPrecondition, col)
	}
}

// Model prices the strike grid with the Black-Scholes closed form.
type Model struct {
	params Params
	norm   *gaussian.Gaussian
}

func NewModel(params Params) (*Model, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Model{params: params, norm: gaussian.NewGaussian(0, 1)}, nil
}

func (m *Model) Params() Params {
	return m.params
}

// PV discounts k to today.
func (m *Model) PV(k float64) float64 {
	return k * math.Exp(-m.params.Rate*m.params.Expiry)
}

// RC is the mean carry K - PV(K) over the grid around spot.
func (m *Model) RC(spot float64) price.Price {
	strikes := Strikes(spot, m.params.Box)
	carry := make([]float64, len(strikes))
	for i, k := range strikes {
		carry[i] = float64(k) - m.PV(float64(k))
	}
	return price.New(stat.Mean(carry, nil))
}

func (m *Model) dPlus(spot float64, k float64) float64 {
	t := m.params.Expiry
	sigma := m.params.Sigma
	return (math.Log(spot/k) + (m.params.Rate+0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t))
}

// Rows prices every strike of the grid around spot, in ascending strike order.
func (m *Model) Rows(spot float64) ([]Row, price.Price, error) {
	if spot <= 0 || math.IsNaN(spot) {
		return nil, price.Unset(), fmt.Errorf("%w: spot must be positive, got %v", types.ErrPrecondition, spot)
	}
	strikes := Strikes(spot, m.params.Box)
	if strikes[0] <= 0 {
		return nil, price.Unset(), fmt.Errorf("%w: spot %v too low for box %d, grid %v", types.ErrPrecondition, spot, m.params.Box, strikes)
	}
	rc := m.RC(spot)
	volT := m.params.Sigma * math.Sqrt(m.params.Expiry)

	calls := make([]float64, len(strikes))
	rows := make([]Row, len(strikes))
	for i, strike := range strikes {
		k := float64(strike)
		dPlus := m.dPlus(spot, k)
		dMinus := dPlus - volT
		pv := m.PV(k)
		call := m.norm.Cdf(dPlus)*spot - m.norm.Cdf(dMinus)*pv
		put := m.norm.Cdf(-dMinus)*pv - m.norm.Cdf(-dPlus)*spot
		calls[i] = call
		rows[i] = Row{
			Strike:      strike,
			Call:        price.New(call),
			Put:         price.New(put),
			PutAndStock: price.New(call - rc.Float64()),
			BuyWrite:    price.New(put + rc.Float64()),
			CallSpread:  price.Unset(),
			CallDelta:   int(math.Round(100 * m.norm.Cdf(dPlus))),
		}
	}
	for i := 0; i < len(rows)-1; i++ {
		rows[i].CallSpread = price.New(calls[i] - calls[i+1])
	}
	return rows, rc, nil
}
