package exchange

import (
	"fmt"

	"github.com/shopspring/decimal"
)

//
// TradeType is an enum that represents the side of a canonical trade.
//
type TradeType int

const (
	Buy TradeType = iota
	Sell
)

func (o TradeType) String() string {
	return [...]string{"buy", "sell"}[o]
}

//
// Trade is the canonical trade record that every exchange adapter normalizes its trade history
// into. Cost and fee are always expressed in the base (first) currency of the pair.
//
type Trade struct {
	Timestamp    int64           // Seconds since the epoch.
	Pair         string          // Canonical pair (e.g. "BTC_ETH").
	Type         TradeType       // Buy or sell.
	Rate         decimal.Decimal // Price per unit.
	Cost         decimal.Decimal // Total cost in CostCurrency.
	CostCurrency string          // Asset symbol that the cost is expressed in.
	Fee          decimal.Decimal // Fee paid in FeeCurrency.
	FeeCurrency  string          // Asset symbol that the fee is expressed in.
	Amount       decimal.Decimal // Filled quantity.
	Location     string          // Tag identifying the source exchange.
}

func (o Trade) String() string {
	return fmt.Sprintf(
		"%s %s %s @ %s (cost: %s %s, fee: %s %s, at: %d, location: %s)",
		o.Type, o.Amount, o.Pair, o.Rate, o.Cost, o.CostCurrency, o.Fee, o.FeeCurrency, o.Timestamp,
		o.Location,
	)
}
