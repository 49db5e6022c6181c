package bittrex

import (
	"strings"

	"github.com/lukehollenback/tally/exchange"
)

const (
	pairSeparator = "-"
)

// PairToWorld converts a Bittrex market name (e.g. "BTC-ETH") into a canonical pair ("BTC_ETH").
func PairToWorld(pair string) string {
	return strings.ReplaceAll(pair, pairSeparator, exchange.PairSeparator)
}

// WorldPairToBittrex converts a canonical pair (e.g. "BTC_ETH") into a Bittrex market name.
func WorldPairToBittrex(pair string) string {
	return strings.ReplaceAll(pair, exchange.PairSeparator, pairSeparator)
}
