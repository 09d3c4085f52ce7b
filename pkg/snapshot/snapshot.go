package snapshot

import (
	"fmt"

	"mmdrill/pkg/board"
	"mmdrill/pkg/market"
	"mmdrill/pkg/matching"
	"mmdrill/pkg/order"
	"mmdrill/pkg/price"

	"github.com/vmihailenco/msgpack/v5"
)

// unset prices and null market sides travel as nil

type Market struct {
	Bid *float64 `msgpack:"b" json:"bid"`
	Ask *float64 `msgpack:"a" json:"ask"`
}

type FairRow struct {
	Strike      int      `msgpack:"k" json:"strike"`
	Call        *float64 `msgpack:"c" json:"call"`
	Put         *float64 `msgpack:"p" json:"put"`
	PutAndStock *float64 `msgpack:"ps" json:"putAndStock"`
	BuyWrite    *float64 `msgpack:"bw" json:"buyWrite"`
	CallSpread  *float64 `msgpack:"cs" json:"callSpread"`
	CallDelta   int      `msgpack:"d" json:"callDelta"`
}

type FairBoard struct {
	Spot     *float64  `msgpack:"s" json:"spot"`
	RC       *float64  `msgpack:"rc" json:"rc"`
	Straddle *float64  `msgpack:"v" json:"straddle"`
	Rows     []FairRow `msgpack:"rows" json:"rows"`
}

type MarketRow struct {
	Strike      int    `msgpack:"k" json:"strike"`
	Call        Market `msgpack:"c" json:"call"`
	Put         Market `msgpack:"p" json:"put"`
	PutAndStock Market `msgpack:"ps" json:"putAndStock"`
	BuyWrite    Market `msgpack:"bw" json:"buyWrite"`
	CallSpread  Market `msgpack:"cs" json:"callSpread"`
	CallDelta   int    `msgpack:"d" json:"callDelta"`
}

type MarketBoard struct {
	Spot     Market      `msgpack:"s" json:"spot"`
	RC       *float64    `msgpack:"rc" json:"rc"`
	Straddle Market      `msgpack:"v" json:"straddle"`
	Rows     []MarketRow `msgpack:"rows" json:"rows"`
}

type Order struct {
	Id     string   `msgpack:"id" json:"id"`
	Option string   `msgpack:"o" json:"option"`
	Side   string   `msgpack:"side" json:"side"`
	Price  *float64 `msgpack:"px" json:"price"`
	Size   int      `msgpack:"sz" json:"size"`
}

type Fill struct {
	OrderId string   `msgpack:"oid" json:"orderId"`
	Side    string   `msgpack:"side" json:"side"`
	Price   *float64 `msgpack:"px" json:"price"`
	Size    int      `msgpack:"sz" json:"size"`
}

type Result struct {
	Order *Order `msgpack:"order" json:"order"`
	Fill  *Fill  `msgpack:"fill,omitempty" json:"fill,omitempty"`
}

func OfMarket(m market.Market) Market {
	return Market{Bid: m.Bid.Ptr(), Ask: m.Ask.Ptr()}
}

func OfBoard(b *board.Board) FairBoard {
	fb := FairBoard{Spot: b.Spot.Ptr(), RC: b.RC.Ptr()}
	if v, err := b.Value(); err == nil {
		fb.Straddle = v.Ptr()
	}
	for _, r := range b.Rows() {
		fb.Rows = append(fb.Rows, FairRow{
			Strike:      r.Strike,
			Call:        r.Call.Ptr(),
			Put:         r.Put.Ptr(),
			PutAndStock: r.PutAndStock.Ptr(),
			BuyWrite:    r.BuyWrite.Ptr(),
			CallSpread:  r.CallSpread.Ptr(),
			CallDelta:   r.CallDelta,
		})
	}
	return fb
}

func OfMarketBoard(mb *board.MarketBoard) MarketBoard {
	s := MarketBoard{
		Spot:     OfMarket(mb.Spot),
		RC:       mb.RC.Ptr(),
		Straddle: OfMarket(mb.Straddle),
	}
	for _, r := range mb.Rows() {
		s.Rows = append(s.Rows, MarketRow{
			Strike:      r.Strike,
			Call:        OfMarket(r.Call),
			Put:         OfMarket(r.Put),
			PutAndStock: OfMarket(r.PutAndStock),
			BuyWrite:    OfMarket(r.BuyWrite),
			CallSpread:  OfMarket(r.CallSpread),
			CallDelta:   r.CallDelta,
		})
	}
	return s
}

func OfOrder(o *order.Order) *Order {
	if o == nil {
		return nil
	}
	return &Order{
		Id:     o.Id,
		Option: o.Option.Key(),
		Side:   string(o.Side),
		Price:  o.Price.Ptr(),
		Size:   o.Size,
	}
}

func OfResult(res matching.Result) Result {
	s := Result{Order: OfOrder(res.Order)}
	if res.Fill != nil {
		s.Fill = &Fill{
			OrderId: res.Fill.OrderId,
			Side:    string(res.Fill.Side),
			Price:   res.Fill.Price.Ptr(),
			Size:    res.Fill.Size,
		}
	}
	return s
}

// Market rebuilds a market, enforcing the same width rules as quoting.
func (m Market) Market() (market.Market, error) {
	return market.New(orNaN(m.Bid), orNaN(m.Ask))
}

func orNaN(v *float64) float64 {
	if v == nil {
		return price.Unset().Float64()
	}
	return *v
}

func Encode(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("fail to encode snapshot: %w", err)
	}
	return data, nil
}

func Decode(data []byte, v any) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		return fmt.Errorf("fail to decode snapshot: %w", err)
	}
	return nil
}
