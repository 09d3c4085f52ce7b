package core

import (
	"context"
	"fmt"
	"time"

	"mmdrill/config"
	"mmdrill/pkg/board"

	log "github.com/sirupsen/logrus"
)

func Bootstrap(ctx context.Context, cfg config.Config) error {
	log.Info("🦾 Bootstrapping...")
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	Config = &cfg

	// price one board up front so a broken pricing setup fails at boot
	params, err := cfg.PricingParams(time.Now())
	if err != nil {
		return err
	}
	fair, err := board.New(cfg.Pricing.SpotMin, params)
	if err != nil {
		return fmt.Errorf("fail to price warm-up board: %w", err)
	}
	if _, err := board.Public(fair, *cfg.Widths); err != nil {
		return fmt.Errorf("fail to quote warm-up board: %w", err)
	}
	log.WithFields(log.Fields{
		"expiry":   params.Expiry,
		"sigma":    params.Sigma,
		"strategy": cfg.Bot.Strategy,
	}).Info("pricing ready")
	return ctx.Err()
}
