package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"mmdrill/pkg/board"
	"mmdrill/pkg/order"
	"mmdrill/pkg/pricing"
	"mmdrill/pkg/types"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Pricing *PricingConfig `yaml:"pricing"`
	Widths  *board.Widths  `yaml:"widths"`
	Bot     *BotConfig     `yaml:"bot"`
	Server  *ServerConfig  `yaml:"server"`
}

type PricingConfig struct {
	Rate    float64 `yaml:"rate"`
	Sigma   float64 `yaml:"sigma"`
	Expiry  float64 `yaml:"expiry"` // years; 0 derives it from the expiry calendar at deal time
	Box     int     `yaml:"box"`
	SpotMin float64 `yaml:"spotMin"`
	SpotMax float64 `yaml:"spotMax"`
}

type BotConfig struct {
	Strategy      types.StrategyName `yaml:"strategy"`
	order.Choices `yaml:",inline"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

var yamlFiles = map[types.EnvName]string{
	types.EnvLocal: "mmdrill.yaml",
	types.EnvDev:   "mmdrill.dev.yaml",
	types.EnvProd:  "mmdrill.prod.yaml",
}

func LoadConfig(envName types.EnvName) (*Config, error) {
	fileName, ok := yamlFiles[envName]
	if !ok {
		return nil, fmt.Errorf("no config file for env '%v'", envName)
	}
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("fail to load config file '%s': %w", fileName, err)
	}
	return Parse(data)
}

// Parse decodes a YAML config over the defaults, so an omitted key keeps its default
// and an explicit zero stays zero.
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("fail to decode config: %w", err)
	}
	config.restoreSections()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func Default() *Config {
	widths := board.DefaultWidths
	return &Config{
		Pricing: &PricingConfig{
			Rate:    0.01,
			Sigma:   0.7,
			Box:     pricing.DefaultBox,
			SpotMin: 30,
			SpotMax: 120,
		},
		Widths: &widths,
		Bot: &BotConfig{
			Strategy: types.StrategyIceberg,
			Choices: order.Choices{
				Aggressions: slices.Clone(order.DefaultChoices.Aggressions),
				Peaks:       slices.Clone(order.DefaultChoices.Peaks),
				Totals:      slices.Clone(order.DefaultChoices.Totals),
			},
		},
		Server: &ServerConfig{Addr: ":3000"},
	}
}

// restoreSections puts back sections a YAML null wiped out.
func (c *Config) restoreSections() {
	defaults := Default()
	if c.Pricing == nil {
		c.Pricing = defaults.Pricing
	}
	if c.Widths == nil {
		c.Widths = defaults.Widths
	}
	if c.Bot == nil {
		c.Bot = defaults.Bot
	}
	if c.Server == nil {
		c.Server = defaults.Server
	}
}

func (c *Config) Validate() error {
	if c.Pricing.SpotMin <= 0 || c.Pricing.SpotMax < c.Pricing.SpotMin {
		return fmt.Errorf("invalid spot range [%v, %v]", c.Pricing.SpotMin, c.Pricing.SpotMax)
	}
	if c.Pricing.Expiry < 0 {
		return fmt.Errorf("invalid expiry %v", c.Pricing.Expiry)
	}
	if _, err := c.PricingParams(time.Now()); err != nil {
		return err
	}
	return nil
}

// PricingParams resolves the model parameters for a deal made at now.
func (c *Config) PricingParams(now time.Time) (pricing.Params, error) {
	params := pricing.Params{
		Rate:   c.Pricing.Rate,
		Sigma:  c.Pricing.Sigma,
		Expiry: c.Pricing.Expiry,
		Box:    c.Pricing.Box,
	}
	if params.Expiry == 0 {
		params.Expiry = pricing.YearsToExpiry(now)
	}
	if err := params.Validate(); err != nil {
		return pricing.Params{}, fmt.Errorf("invalid pricing config: %w", err)
	}
	return params, nil
}
