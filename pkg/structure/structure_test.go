package structure

import (
	"errors"
	"math/rand"
	"testing"

	"mmdrill/pkg/price"
	"mmdrill/pkg/pricing"
	"mmdrill/pkg/types"
)

type stubGrid map[int]pricing.Row

func (g stubGrid) Row(strike int) (pricing.Row, error) {
	row, ok := g[strike]
	if !ok {
		return pricing.Row{}, types.ErrUnknownStrike
	}
	return row, nil
}

func newStubGrid() stubGrid {
	return stubGrid{
		95:  {Strike: 95, Call: price.New(11.37), Put: price.New(6.28)},
		100: {Strike: 100, Call: price.New(8.86), Put: price.New(8.76)},
	}
}

func TestFormulas(t *testing.T) {
	grid := newStubGrid()
	cases := []struct {
		s       Structure
		strikes []int
		want    float64
	}{
		{Call, []int{100}, 8.86},
		{Put, []int{100}, 8.76},
		{Combo, []int{100}, 0.10},
		{Straddle, []int{100}, 17.62},
		{CallSpread, []int{95, 100}, 2.51},
		{PutSpread, []int{95, 100}, 2.48},
		{Risky, []int{95, 100}, 2.61},
		{Strangle, []int{95, 100}, 15.14},
	}
	for _, c := range cases {
		opt, err := NewOption(c.strikes, c.s, grid)
		if err != nil {
			t.Fatalf("%v: %v", c.s, err)
		}
		got, err := opt.Price()
		if err != nil {
			t.Fatalf("%v: %v", c.s, err)
		}
		if got.Float64() != c.want {
			t.Errorf("%v price = %v, expected %v", opt, got.Float64(), c.want)
		}
	}
}

func TestArity(t *testing.T) {
	for _, s := range All {
		want := 1
		if s >= CallSpread {
			want = 2
		}
		if s.Arity() != want {
			t.Errorf("%v arity = %v, expected %v", s, s.Arity(), want)
		}
	}
}

func TestNewOptionRejects(t *testing.T) {
	grid := newStubGrid()
	if _, err := NewOption([]int{95, 100}, Call, grid); !errors.Is(err, types.ErrPrecondition) {
		t.Errorf("expected arity error, got %v", err)
	}
	if _, err := NewOption([]int{100}, CallSpread, grid); !errors.Is(err, types.ErrPrecondition) {
		t.Errorf("expected arity error, got %v", err)
	}
	if _, err := NewOption([]int{100, 95}, CallSpread, grid); !errors.Is(err, types.ErrPrecondition) {
		t.Errorf("expected ordering error, got %v", err)
	}
}

func TestUnknownStrike(t *testing.T) {
	opt, err := NewOption([]int{105}, Call, newStubGrid())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := opt.Price(); !errors.Is(err, types.ErrUnknownStrike) {
		t.Errorf("expected unknown strike error, got %v", err)
	}
}

func TestStrikesCopied(t *testing.T) {
	strikes := []int{95, 100}
	opt, _ := NewOption(strikes, Strangle, newStubGrid())
	strikes[0] = 50
	if opt.Strikes()[0] != 95 {
		t.Errorf("option shares the caller's strike slice")
	}
	if opt.String() != "95/100 Strangle" {
		t.Errorf("unexpected name %q", opt.String())
	}
}

func TestParse(t *testing.T) {
	cases := map[string]Structure{
		"call": Call, "Calls": Call, "puts": Put, "combo": Combo, "callspread": CallSpread,
		"Risky": Risky, "strangle": Strangle, "straddle": Straddle, "putspread": PutSpread,
	}
	for name, want := range cases {
		got, err := Parse(name)
		if err != nil || got != want {
			t.Errorf("Parse(%q) = %v (%v), expected %v", name, got, err, want)
		}
	}
	if _, err := Parse("butterfly"); !errors.Is(err, types.ErrPrecondition) {
		t.Errorf("expected precondition error for unknown structure")
	}
}

func TestRand(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		opt, err := Rand(newStubGrid(), []int{95, 100}, rng)
		if err != nil {
			t.Fatal(err)
		}
		if opt.Structure().Arity() != 1 {
			t.Errorf("random option %v should be single strike", opt)
		}
		if _, err := opt.Price(); err != nil {
			t.Errorf("random option %v does not price: %v", opt, err)
		}
	}
}
