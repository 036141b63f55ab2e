// Package equivalence holds the fixed fiat/stablecoin equivalence classes
// used to broaden asset matching. Pure data plus pure functions; loaded once,
// immutable afterwards.
package equivalence

import "sort"

// classes maps a fiat code to every symbol treated as equivalent to it,
// the fiat code included.
var classes = map[string][]string{
	"USD": {"USD", "USDT", "USDC", "BUSD", "DAI", "TUSD", "USDP", "GUSD", "FDUSD"},
	"EUR": {"EUR", "EURS", "EURT", "SEUR", "CEUR", "EURE", "JEUR"},
}

// fiat codes score best when ranking conversion pairs.
var fiat = map[string]bool{
	"USD": true,
	"EUR": true,
}

// stablecoins score second-best when ranking conversion pairs.
var stablecoins = map[string]bool{
	"USDT": true, "USDC": true, "BUSD": true, "DAI": true, "TUSD": true,
	"USDP": true, "GUSD": true, "FDUSD": true, "EURS": true, "EURT": true,
}

// Conversion pair priorities, lower is better.
const (
	PriorityFiat       = 1
	PriorityStablecoin = 2
	PriorityOther      = 3
)

// VariantsOf returns the sorted, deduplicated equivalence class of symbol.
// A symbol outside every class maps to the singleton {symbol}.
func VariantsOf(symbol string) []string {
	variants := []string{symbol}
	for _, members := range classes {
		for _, m := range members {
			if m == symbol {
				variants = append(variants, members...)
				break
			}
		}
	}

	sort.Strings(variants)
	out := variants[:0]
	for i, v := range variants {
		if i == 0 || variants[i-1] != v {
			out = append(out, v)
		}
	}
	return out
}

// SameClass reports whether two symbols belong to one equivalence class
// (or are identical).
func SameClass(a, b string) bool {
	if a == b {
		return true
	}
	for _, v := range VariantsOf(a) {
		if v == b {
			return true
		}
	}
	return false
}

// ConversionPriority ranks a candidate conversion pair by its legs: 1 when
// either side is a bare fiat code, 2 when either side is a known stablecoin,
// 3 otherwise.
func ConversionPriority(baseSymbol, quoteSymbol string) int {
	if fiat[baseSymbol] || fiat[quoteSymbol] {
		return PriorityFiat
	}
	if stablecoins[baseSymbol] || stablecoins[quoteSymbol] {
		return PriorityStablecoin
	}
	return PriorityOther
}
