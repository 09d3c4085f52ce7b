package pricing

import (
	"math"

	"mmdrill/pkg/price"
)

// NumStrikes is the size of every strike grid.
const NumStrikes = 5

// ATM rounds spot to the nearest multiple of box.
func ATM(spot float64, box int) int {
	return int(math.Round(price.RoundTo(spot, float64(box))))
}

// Strikes returns five strikes spaced by box and centered on the at-the-money strike.
func Strikes(spot float64, box int) []int {
	atm := ATM(spot, box)
	strikes := make([]int, NumStrikes)
	for i := range strikes {
		strikes[i] = atm + (i-NumStrikes/2)*box
	}
	return strikes
}
