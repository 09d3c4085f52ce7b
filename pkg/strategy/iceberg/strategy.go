package iceberg

import (
	"fmt"

	"mmdrill/pkg/market"
	"mmdrill/pkg/matching"
	"mmdrill/pkg/order"
	"mmdrill/pkg/types"

	log "github.com/sirupsen/logrus"
)

// Strategy works an iceberg order one clip per quote from the human.
type Strategy struct {
	Iceberg *order.IcebergOrder
	Book    *matching.Book

	logger *log.Entry
}

func New(ice *order.IcebergOrder, book *matching.Book) *Strategy {
	s := &Strategy{Iceberg: ice, Book: book}
	s.logger = log.WithFields(log.Fields{
		"stratId": s.Id(),
	})
	return s
}

func (s *Strategy) Id() string {
	return fmt.Sprintf("%s:%s:%s", types.StrategyIceberg, s.Iceberg.Option.Key(), s.Iceberg.Side)
}

func (s *Strategy) Name() types.StrategyName {
	return types.StrategyIceberg
}

func (s *Strategy) Validate() error {
	if s.Iceberg == nil || s.Book == nil {
		return fmt.Errorf("%w: iceberg strategy needs an order and a book", types.ErrPrecondition)
	}
	return nil
}

func (s *Strategy) Request() string {
	return s.Iceberg.String()
}

// Respond pops one clip and matches it against m. A clip that does not cross rests in the book.
// A market that is unquoted or misses fair is refused before anything is popped.
func (s *Strategy) Respond(m market.Market) (matching.Result, error) {
	if err := s.check(m); err != nil {
		return matching.Result{}, err
	}
	clip, err := s.Iceberg.Pop(0)
	if err != nil {
		return matching.Result{}, err
	}
	res, err := matching.Match(clip, m)
	if err != nil {
		s.Iceberg.Total += clip.Size
		return matching.Result{}, fmt.Errorf("fail to match %v: %w", clip, err)
	}
	if res.Crossed() {
		s.logger.Infof("filled %v against %v", res.Fill, m)
		return res, nil
	}
	resting, err := s.Book.Append(clip)
	if err != nil {
		return matching.Result{}, fmt.Errorf("fail to rest %v: %w", clip, err)
	}
	s.logger.Debugf("%v rests behind %v, working %v", clip, m, resting)
	return res, nil
}

func (s *Strategy) check(m market.Market) error {
	if m.HasNull() {
		return fmt.Errorf("%w: no market to trade against", types.ErrPrecondition)
	}
	fair, err := s.Iceberg.Option.Price()
	if err != nil {
		return err
	}
	if !m.Contains(fair.Float64()) {
		side := types.OrderSideSell
		if m.Ask.Less(fair) {
			side = types.OrderSideBuy
		}
		s.logger.Infof("%v misses fair, counterparty would %v", m, side)
		return fmt.Errorf("%w: %v for %v", types.ErrMissesFair, m, s.Iceberg.Option)
	}
	return nil
}

func (s *Strategy) Done() bool {
	return s.Iceberg.IsEmpty()
}

func (s *Strategy) Shutdown() error {
	s.logger.WithField("remaining", s.Iceberg.Total).Info("💤 shutting down...")
	return nil
}
