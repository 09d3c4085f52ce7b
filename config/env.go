package config

import (
	"strings"

	"mmdrill/pkg/types"
	"mmdrill/pkg/utils"

	"github.com/joho/godotenv"
)

var Env = Environment{}

type Environment struct {
	EnvName types.EnvName
}

func init() {
	godotenv.Load()
	Env.EnvName = ParseEnvName(utils.LoadEnvWithDefault("ENVIRONMENT", string(types.EnvLocal)))
}

func ParseEnvName(name string) types.EnvName {
	switch strings.ToLower(name) {
	case "prod", "production":
		return types.EnvProd
	case "dev", "staging":
		return types.EnvDev
	default:
		return types.EnvLocal
	}
}
