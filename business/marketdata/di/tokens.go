// Package di contains dependency injection tokens for the marketdata context.
package di

// DI tokens for the marketdata module.
const (
	ExchangeService = "marketdata.ExchangeService"
	AssetService    = "marketdata.AssetService"
	PairService     = "marketdata.PairService"
	PairRepository  = "marketdata.PairRepository"
)
