package utils

import (
	"fmt"
	"strconv"
	"strings"

	"mmdrill/pkg/market"
	"mmdrill/pkg/types"
)

func StrToFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err
}

func FloatToStr(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseMarket reads "bid@ask" or "bid-ask"; blank input is a null market.
func ParseMarket(s string) (market.Market, error) {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return market.Null(), nil
	}
	sep := "@"
	if !strings.Contains(s, sep) {
		// a leading minus would be a negative bid, never a separator
		sep = "-"
		if strings.LastIndex(s, sep) <= 0 {
			return market.Null(), fmt.Errorf("%w: cannot read market '%v'", types.ErrInvalidMarket, s)
		}
	}
	i := strings.LastIndex(s, sep)
	bid, err := StrToFloat(s[:i])
	if err != nil {
		return market.Null(), fmt.Errorf("%w: bad bid in '%v': %w", types.ErrInvalidMarket, s, err)
	}
	ask, err := StrToFloat(s[i+1:])
	if err != nil {
		return market.Null(), fmt.Errorf("%w: bad ask in '%v': %w", types.ErrInvalidMarket, s, err)
	}
	return market.New(bid, ask)
}

// FormatMarket is the inverse of ParseMarket for quoted markets.
func FormatMarket(m market.Market) string {
	if m.HasNull() {
		return ""
	}
	return FloatToStr(m.Bid.Float64()) + "@" + FloatToStr(m.Ask.Float64())
}
