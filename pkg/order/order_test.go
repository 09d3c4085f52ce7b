package order

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"

	"mmdrill/pkg/price"
	"mmdrill/pkg/pricing"
	"mmdrill/pkg/structure"
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

var grid = stubGrid{
	100: {Strike: 100, Call: price.New(8.86), Put: price.New(8.76)},
	105: {Strike: 105, Call: price.New(6.79), Put: price.New(11.64)},
}

func option(t *testing.T, strike int, s structure.Structure) *structure.Option {
	t.Helper()
	opt, err := structure.NewOption([]int{strike}, s, grid)
	if err != nil {
		t.Fatalf("fail to build option: %v", err)
	}
	return opt
}

func TestOrderAdd(t *testing.T) {
	call := option(t, 100, structure.Call)
	testCases := []struct {
		side types.OrderSide
		want float64
	}{
		{types.OrderSideBuy, 9.10},
		{types.OrderSideSell, 8.90},
	}
	for _, tc := range testCases {
		a, _ := New(call, tc.side, price.New(8.90), 50)
		b, _ := New(call, tc.side, price.New(9.10), 100)
		sum, err := a.Add(b)
		if err != nil {
			t.Fatalf("%v: %v", tc.side, err)
		}
		if sum.Size != 150 {
			t.Errorf("%v size = %d, want 150", tc.side, sum.Size)
		}
		if sum.Price.Float64() != tc.want {
			t.Errorf("%v price = %v, want %v", tc.side, sum.Price, tc.want)
		}
	}
}

func TestOrderAddRejectsMismatch(t *testing.T) {
	call := option(t, 100, structure.Call)
	buy, _ := New(call, types.OrderSideBuy, price.New(9), 50)
	sell, _ := New(call, types.OrderSideSell, price.New(9), 50)
	if _, err := buy.Add(sell); !errors.Is(err, types.ErrPrecondition) {
		t.Errorf("side mismatch error = %v", err)
	}
	other, _ := New(option(t, 105, structure.Call), types.OrderSideBuy, price.New(9), 50)
	if _, err := buy.Add(other); !errors.Is(err, types.ErrPrecondition) {
		t.Errorf("option mismatch error = %v", err)
	}
}

func TestOrderNewRejects(t *testing.T) {
	call := option(t, 100, structure.Call)
	if _, err := New(nil, types.OrderSideBuy, price.New(1), 1); !errors.Is(err, types.ErrPrecondition) {
		t.Errorf("nil option error = %v", err)
	}
	if _, err := New(call, types.OrderSide("hold"), price.New(1), 1); !errors.Is(err, types.ErrPrecondition) {
		t.Errorf("bad side error = %v", err)
	}
	if _, err := New(call, types.OrderSideBuy, price.Unset(), 1); !errors.Is(err, types.ErrPrecondition) {
		t.Errorf("unset price error = %v", err)
	}
	for _, size := range []int{0, -50} {
		if _, err := New(call, types.OrderSideBuy, price.New(1), size); !errors.Is(err, types.ErrPrecondition) {
			t.Errorf("size %d error = %v", size, err)
		}
	}
}

func TestIcebergExhaustion(t *testing.T) {
	testCases := []struct {
		name  string
		total int
		peak  int
		clips []int
	}{
		{"exact", 200, 50, []int{50, 50, 50, 50}},
		{"clamped", 120, 50, []int{50, 50, 20}},
		{"single", 30, 50, []int{30}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ice, err := NewIceberg(option(t, 100, structure.Call), types.OrderSideBuy, 0.1, tc.peak, tc.total)
			if err != nil {
				t.Fatal(err)
			}
			var clips []int
			for !ice.IsEmpty() {
				o, err := ice.Pop(0)
				if err != nil {
					t.Fatal(err)
				}
				clips = append(clips, o.Size)
			}
			if !slices.Equal(clips, tc.clips) {
				t.Errorf("clips = %v, want %v", clips, tc.clips)
			}
			if ice.Total != 0 {
				t.Errorf("total = %d, want 0", ice.Total)
			}
			if _, err := ice.Pop(0); !errors.Is(err, types.ErrExhausted) {
				t.Errorf("pop after exhaustion error = %v", err)
			}
		})
	}
}

func TestIcebergPopExplicitSize(t *testing.T) {
	ice, _ := NewIceberg(option(t, 100, structure.Call), types.OrderSideSell, 0.1, 50, 100)
	o, err := ice.Pop(30)
	if err != nil {
		t.Fatal(err)
	}
	if o.Size != 30 || ice.Total != 70 {
		t.Errorf("clip %d, left %d", o.Size, ice.Total)
	}
	o, _ = ice.Pop(500)
	if o.Size != 70 || !ice.IsEmpty() {
		t.Errorf("oversized clip %d, left %d", o.Size, ice.Total)
	}
}

func TestIcebergLimitPrice(t *testing.T) {
	testCases := []struct {
		side types.OrderSide
		agg  float64
		want float64
	}{
		{types.OrderSideBuy, 0.1, 9.75},
		{types.OrderSideSell, 0.1, 7.97},
		{types.OrderSideBuy, 0.2, 10.63},
		{types.OrderSideSell, 0.05, 8.42},
	}
	for _, tc := range testCases {
		ice, err := NewIceberg(option(t, 100, structure.Call), tc.side, tc.agg, 50, 200)
		if err != nil {
			t.Fatal(err)
		}
		o, err := ice.Pop(0)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(o.Price.Float64()-tc.want) > 1e-9 {
			t.Errorf("%v %v: price = %v, want %v", tc.side, tc.agg, o.Price, tc.want)
		}
		if o.Side != tc.side {
			t.Errorf("clip side = %v", o.Side)
		}
	}
}

func TestNewIcebergRejects(t *testing.T) {
	call := option(t, 100, structure.Call)
	testCases := []struct {
		agg         float64
		peak, total int
	}{
		{0, 50, 200},
		{1, 50, 200},
		{0.1, 0, 200},
		{0.1, 50, 0},
	}
	for _, tc := range testCases {
		if _, err := NewIceberg(call, types.OrderSideBuy, tc.agg, tc.peak, tc.total); !errors.Is(err, types.ErrPrecondition) {
			t.Errorf("%+v error = %v", tc, err)
		}
	}
}

func TestRandIceberg(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	call := option(t, 100, structure.Call)
	for i := 0; i < 50; i++ {
		ice, err := RandIceberg(call, DefaultChoices, rng)
		if err != nil {
			t.Fatal(err)
		}
		if !ice.Side.Valid() ||
			!slices.Contains(DefaultChoices.Aggressions, ice.Aggression) ||
			!slices.Contains(DefaultChoices.Peaks, ice.Peak) ||
			!slices.Contains(DefaultChoices.Totals, ice.Total) {
			t.Fatalf("draw outside choices: %+v", ice)
		}
	}
	if _, err := RandIceberg(call, Choices{}, rng); !errors.Is(err, types.ErrPrecondition) {
		t.Errorf("empty choices error = %v", err)
	}
}
