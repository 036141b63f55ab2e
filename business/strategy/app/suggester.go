package app

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	mdDomain "github.com/fmoreno/arbitrage-api/business/marketdata/domain"
	"github.com/fmoreno/arbitrage-api/business/strategy/domain"
	"github.com/fmoreno/arbitrage-api/internal/apm"
	"github.com/fmoreno/arbitrage-api/internal/apperror"
	"github.com/fmoreno/arbitrage-api/internal/equivalence"
	"github.com/fmoreno/arbitrage-api/internal/logger"
	"github.com/fmoreno/arbitrage-api/internal/ratelimit"
	"github.com/fmoreno/arbitrage-api/internal/ref"
)

// Suggester discovers candidate geographic strategies between two exchanges.
// Every search hits the store directly; no pair data is cached in process.
type Suggester struct {
	pairs    PairFinder
	log      logger.LoggerInterface
	tracer   apm.Tracer
	limiter  *ratelimit.Limiter
	maxPairs int
}

// NewSuggester creates a Suggester. scanRate throttles per-pair store
// searches; maxPairs caps how many first-exchange pairs one scan considers,
// zero meaning no cap.
func NewSuggester(pairs PairFinder, log logger.LoggerInterface, scanRate float64, scanBurst, maxPairs int) *Suggester {
	return &Suggester{
		pairs:    pairs,
		log:      log,
		tracer:   apm.NewTracer("strategy.suggester"),
		limiter:  ratelimit.New(scanRate, scanBurst),
		maxPairs: maxPairs,
	}
}

// Suggest scans exchange1's pairs for counterparts on exchange2 and returns
// unsaved draft strategies. Only geographic arbitrage is implemented; other
// types are rejected rather than returning an empty result.
func (s *Suggester) Suggest(ctx context.Context, exchange1, exchange2 ref.ID, typ domain.ArbitrageType) ([]domain.Strategy, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "suggest.scan")
	defer span.End()

	switch typ {
	case domain.TypeGeographic:
	case domain.TypeExchange, domain.TypeTriangular, domain.TypeTradingPair:
		return nil, apperror.Validation(apperror.CodeSuggestionNotImplemented, string(typ))
	default:
		return nil, apperror.Validation(apperror.CodeInvalidArbitrageType, string(typ))
	}
	if exchange1.IsZero() || exchange2.IsZero() {
		return nil, apperror.Validation(apperror.CodeInvalidReference, "exchange ids")
	}

	span.SetAttributes(
		attribute.String("suggest.exchange1", exchange1.Hex()),
		attribute.String("suggest.exchange2", exchange2.Hex()),
	)

	pairs1, err := s.pairs.ListByExchange(ctx, exchange1)
	if err != nil {
		span.NoticeError(err)
		return nil, apperror.Wrap(err, apperror.CodeSuggestionScanFailed, "list first exchange pairs")
	}
	if s.maxPairs > 0 && len(pairs1) > s.maxPairs {
		pairs1 = pairs1[:s.maxPairs]
	}

	drafts := make([]domain.Strategy, 0)
	for _, p1 := range pairs1 {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, apperror.Wrap(err, apperror.CodeSuggestionScanFailed, "scan throttle")
		}

		quoteVariants := equivalence.VariantsOf(p1.QuoteAsset.ShortName)
		p2, err := s.pairs.FindMatching(ctx, exchange2, p1.BaseAsset.ShortName, quoteVariants)
		if err != nil {
			span.NoticeError(err)
			return nil, apperror.Wrap(err, apperror.CodeSuggestionScanFailed, "find matching pair")
		}
		if p2 == nil {
			continue
		}

		conversion, err := s.findConversion(ctx, p1.QuoteAsset.ShortName, p2.QuoteAsset.ShortName)
		if err != nil {
			span.NoticeError(err)
			return nil, err
		}
		if conversion == nil {
			continue
		}

		drafts = append(drafts, domain.Strategy{
			ArbitrageType: domain.TypeGeographic,
			Details: domain.GeographicArbitrage{
				Pair1:          p1.ID,
				Pair2:          p2.ID,
				ConversionPair: conversion.ID,
			},
			Status: true,
		})
	}

	s.log.Info(ctx, "suggestion scan finished",
		"exchange1", exchange1.Hex(),
		"exchange2", exchange2.Hex(),
		"scanned", len(pairs1),
		"drafts", len(drafts),
	)
	return drafts, nil
}

// findConversion picks the best pair bridging the two quote currencies,
// preferring fiat legs over stablecoin legs over everything else. The first
// candidate wins a priority tie.
func (s *Suggester) findConversion(ctx context.Context, quote1, quote2 string) (*mdDomain.PopulatedMarketPair, error) {
	candidates, err := s.pairs.FindConversionBySymbols(ctx,
		equivalence.VariantsOf(quote1),
		equivalence.VariantsOf(quote2),
	)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeSuggestionScanFailed, "find conversion pair")
	}

	var (
		best     *mdDomain.PopulatedMarketPair
		bestRank int
	)
	for i := range candidates {
		c := &candidates[i]
		rank := equivalence.ConversionPriority(c.BaseAsset.ShortName, c.QuoteAsset.ShortName)
		if best == nil || rank < bestRank {
			best = c
			bestRank = rank
		}
	}
	return best, nil
}
