// Package di contains dependency injection tokens for the strategy context.
package di

// DI tokens for the strategy module.
const (
	StrategyService = "strategy.StrategyService"
	Suggester       = "strategy.Suggester"
)
