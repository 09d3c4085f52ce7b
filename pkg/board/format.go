package board

import (
	"fmt"
	"strings"
)

func header(spot fmt.Stringer, rc fmt.Stringer) string {
	return fmt.Sprintf("S = %v, r/c = %v", spot, rc)
}

// String renders the fair grid with call deltas.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString(header(b.Spot, b.RC))
	sb.WriteString("\nStrike  Delta   Call    Put     P&S     BW      CS")
	for _, r := range b.rows {
		fmt.Fprintf(&sb, "\n%6d  %5d   %v   %v   %v   %v   %v",
			r.Strike, r.CallDelta, r.Call, r.Put, r.PutAndStock, r.BuyWrite, r.CallSpread)
	}
	if value, err := b.Value(); err == nil {
		fmt.Fprintf(&sb, "\n%v: %v", b.Straddle(), value)
	}
	return sb.String()
}

// String renders the public layout: put&stock and call left of the strike, put and
// buywrite right of it, call spreads between rows.
func (mb *MarketBoard) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "S = %v, r/c = %v", strings.TrimSpace(mb.Spot.String()), mb.RC)
	sb.WriteString("\n     PutsAndStock        Call        |  Strike   |        Put         Buywrite")
	for i, r := range mb.rows {
		cells := []string{
			r.PutAndStock.String(),
			r.Call.String(),
			fmt.Sprintf("|%6d     |", r.Strike),
			r.Put.String(),
			r.BuyWrite.String(),
		}
		sb.WriteString("\n       ")
		sb.WriteString(strings.Join(cells, "    "))
		if i < len(mb.rows)-1 {
			fmt.Fprintf(&sb, "\n%v<", r.CallSpread)
		}
	}
	fmt.Fprintf(&sb, "\n%v: %v", mb.StraddleOption(), strings.TrimSpace(mb.Straddle.String()))
	return sb.String()
}
