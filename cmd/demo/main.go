package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"mmdrill/config"
	"mmdrill/pkg/board"
	"mmdrill/pkg/market"
	"mmdrill/pkg/matching"
	"mmdrill/pkg/strategy"
	"mmdrill/pkg/structure"

	log "github.com/sirupsen/logrus"
)

// Plays one scripted round: deal, show the public and fair boards, then answer a
// counterparty with the fair-value market until it runs dry.
func main() {
	spot := flag.Float64("spot", 100, "underlying price")
	seed := flag.Int64("seed", 1, "scenario seed")
	expiry := flag.Float64("expiry", 0.1, "years to expiry")
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg := config.Default()
	cfg.Pricing.Expiry = *expiry
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	params, err := cfg.PricingParams(time.Now())
	if err != nil {
		log.Fatal(err)
	}
	fair, err := board.New(*spot, params)
	if err != nil {
		log.Fatalf("fail to price board: %v", err)
	}
	public, err := board.Public(fair, *cfg.Widths)
	if err != nil {
		log.Fatalf("fail to build public board: %v", err)
	}
	fmt.Println(public)
	fmt.Println()
	fmt.Println(fair)
	fmt.Println()

	rng := rand.New(rand.NewSource(*seed))
	opt, err := structure.Rand(fair, fair.Strikes(), rng)
	if err != nil {
		log.Fatal(err)
	}
	book := matching.NewBook()
	bot, err := strategy.New(cfg.Bot.Strategy, opt, cfg.Bot.Choices, book, rng)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(bot.Request())

	value, err := opt.Price()
	if err != nil {
		log.Fatal(err)
	}
	m, err := market.FromPrice(value.Float64())
	if err != nil {
		// negative combos have no market
		log.Warnf("fail to quote %v: %v", opt, err)
		return
	}
	fmt.Printf("%v: %v\n", opt, m)
	for !bot.Done() {
		res, err := bot.Respond(m)
		if err != nil {
			log.Fatal(err)
		}
		if res.Crossed() {
			fmt.Printf("  traded: %v\n", res.Fill)
		} else {
			fmt.Printf("  resting: %v\n", res.Order)
		}
	}
	for _, o := range book.Orders() {
		fmt.Printf("working: %v\n", o)
	}
	_ = bot.Shutdown()
}
