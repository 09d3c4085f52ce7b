package pricing

import (
	"fmt"

	"mmdrill/pkg/types"
)

// DefaultBox is the strike spacing used when none is configured.
const DefaultBox = 5

// Params is the pricing configuration shared by every row of a board.
type Params struct {
	Rate   float64 `yaml:"rate" json:"rate"`     // continuously compounded risk free rate
	Sigma  float64 `yaml:"sigma" json:"sigma"`   // volatility of the underlying
	Expiry float64 `yaml:"expiry" json:"expiry"` // time left until expiry (years)
	Box    int     `yaml:"box" json:"box"`       // strike spacing
}

func (p Params) Validate() error {
	if p.Sigma <= 0 {
		return fmt.Errorf("%w: sigma must be positive, got %v", types.ErrPrecondition, p.Sigma)
	}
	if p.Expiry <= 0 {
		return fmt.Errorf("%w: expiry must be positive, got %v", types.ErrPrecondition, p.Expiry)
	}
	if p.Box <= 0 {
		return fmt.Errorf("%w: box must be positive, got %v", types.ErrPrecondition, p.Box)
	}
	return nil
}
