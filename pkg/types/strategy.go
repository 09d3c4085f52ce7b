package types

type StrategyName string

const (
	StrategyIceberg = StrategyName("iceberg")
)
