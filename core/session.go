package core

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"mmdrill/config"
	"mmdrill/pkg/board"
	"mmdrill/pkg/market"
	"mmdrill/pkg/matching"
	"mmdrill/pkg/snapshot"
	"mmdrill/pkg/strategy"
	"mmdrill/pkg/structure"
	"mmdrill/pkg/types"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Session is one training table: a fair board, the human's public board and at
// most one counterparty working against it. Every method runs under the session lock.
type Session struct {
	Id string

	mu       sync.Mutex
	config   *config.Config
	rng      *rand.Rand
	fair     *board.Board
	public   *board.MarketBoard
	bot      strategy.Strategy
	book     *matching.Book
	lastSeen time.Time

	logger *log.Entry
}

func NewSession(cfg *config.Config, seed int64) *Session {
	id := uuid.NewString()
	return &Session{
		Id:       id,
		config:   cfg,
		rng:      rand.New(rand.NewSource(seed)),
		book:     matching.NewBook(),
		lastSeen: time.Now(),
		logger: log.WithFields(log.Fields{
			"session": id,
		}),
	}
}

func (s *Session) touch() {
	s.lastSeen = time.Now()
}

func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Deal prices a new board at spot, or at a random spot in the configured range when
// spot is nil. Any running counterparty and resting orders are dropped.
func (s *Session) Deal(spot *float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	var px float64
	if spot != nil {
		px = *spot
	} else {
		px = s.config.Pricing.SpotMin + s.rng.Float64()*(s.config.Pricing.SpotMax-s.config.Pricing.SpotMin)
	}
	params, err := s.config.PricingParams(time.Now())
	if err != nil {
		return err
	}
	fair, err := board.New(px, params)
	if err != nil {
		return err
	}
	public, err := board.Public(fair, *s.config.Widths)
	if err != nil {
		return fmt.Errorf("fail to build public board: %w", err)
	}
	s.stopBot()
	s.fair = fair
	s.public = public
	s.book.Clear()
	s.logger.WithFields(log.Fields{
		"spot": fair.Spot,
		"rc":   fair.RC,
	}).Info("🃏 dealt new board")
	return nil
}

func (s *Session) ready() error {
	if s.fair == nil {
		return fmt.Errorf("%w: no board dealt yet", types.ErrPrecondition)
	}
	return nil
}

// Quote writes the human's market into the public board if it contains fair.
func (s *Session) Quote(strike int, col types.Column, m market.Market) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.public.Quote(strike, col, m); err != nil {
		s.logger.Debugf("rejected %v for %d %v: %v", m, strike, col, err)
		return err
	}
	s.logger.Debugf("quoted %d %v at %v", strike, col, m)
	return nil
}

// StartBot draws a counterparty on a random single-strike option and returns its request.
func (s *Session) StartBot() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.ready(); err != nil {
		return "", err
	}
	opt, err := structure.Rand(s.fair, s.fair.Strikes(), s.rng)
	if err != nil {
		return "", err
	}
	bot, err := strategy.New(s.config.Bot.Strategy, opt, s.config.Bot.Choices, s.book, s.rng)
	if err != nil {
		return "", err
	}
	s.stopBot()
	s.bot = bot
	s.logger.WithField("stratId", bot.Id()).Info("🤖 counterparty arrived")
	return bot.Request(), nil
}

// RespondBot answers the running counterparty with m.
func (s *Session) RespondBot(m market.Market) (matching.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.bot == nil {
		return matching.Result{}, fmt.Errorf("%w: no counterparty is waiting", types.ErrPrecondition)
	}
	res, err := s.bot.Respond(m)
	if err != nil {
		return matching.Result{}, err
	}
	if s.bot.Done() {
		s.stopBot()
	}
	return res, nil
}

func (s *Session) stopBot() {
	if s.bot == nil {
		return
	}
	if err := s.bot.Shutdown(); err != nil {
		s.logger.Errorf("fail to shut down %v: %v", s.bot.Id(), err)
	}
	s.bot = nil
}

func (s *Session) BotRequest() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bot == nil {
		return "", false
	}
	return s.bot.Request(), true
}

func (s *Session) Board() (snapshot.MarketBoard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.ready(); err != nil {
		return snapshot.MarketBoard{}, err
	}
	return snapshot.OfMarketBoard(s.public), nil
}

func (s *Session) BoardText() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.ready(); err != nil {
		return "", err
	}
	return s.public.String(), nil
}

func (s *Session) Fair() (snapshot.FairBoard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.ready(); err != nil {
		return snapshot.FairBoard{}, err
	}
	return snapshot.OfBoard(s.fair), nil
}

// Orders lists the counterparty orders resting in the book.
func (s *Session) Orders() []*snapshot.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	orders := []*snapshot.Order{}
	for _, o := range s.book.Orders() {
		orders = append(orders, snapshot.OfOrder(o))
	}
	return orders
}

func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopBot()
	s.logger.Info("😴 session closed")
}
