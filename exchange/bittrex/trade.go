package bittrex

import (
	"errors"
	"fmt"

	"github.com/lukehollenback/tally/exchange"
)

var (
	ErrUnknownOrderType = errors.New("unexpected order type")
	ErrNegativeAmount   = errors.New("more quantity remaining than ordered")
)

//
// TradeFromBittrex turns an order from the Bittrex trade history into a canonical trade. Only limit
// orders are understood; any other order type is an error and no trade is produced, as is an order
// that reports more quantity remaining than it was placed for.
//
func TradeFromBittrex(order Order) (exchange.Trade, error) {
	amount := order.Quantity.Sub(order.QuantityRemaining)
	if amount.IsNegative() {
		return exchange.Trade{}, fmt.Errorf(
			"%w (quantity %s, remaining %s) for bittrex trade %s",
			ErrNegativeAmount, order.Quantity, order.QuantityRemaining, order.OrderUUID,
		)
	}

	pair := PairToWorld(order.Exchange)
	baseCurrency := exchange.PairFirst(pair)

	var tradeType exchange.TradeType

	cost := order.Price

	switch order.OrderType {
	case OrderTypeLimitBuy:
		tradeType = exchange.Buy
		cost = cost.Add(order.Commission)
	case OrderTypeLimitSell:
		tradeType = exchange.Sell
		cost = cost.Sub(order.Commission)
	default:
		return exchange.Trade{}, fmt.Errorf(
			"%w \"%s\" for bittrex trade %s", ErrUnknownOrderType, order.OrderType, order.OrderUUID,
		)
	}

	return exchange.Trade{
		Timestamp:    order.TimeStamp,
		Pair:         pair,
		Type:         tradeType,
		Rate:         order.PricePerUnit,
		Cost:         cost,
		CostCurrency: baseCurrency,
		Fee:          order.Commission,
		FeeCurrency:  baseCurrency,
		Amount:       amount,
		Location:     Location,
	}, nil
}

//
// TradesFromBittrex normalizes a whole trade history, failing on the first order that cannot be
// normalized.
//
func TradesFromBittrex(orders []Order) ([]exchange.Trade, error) {
	trades := make([]exchange.Trade, 0, len(orders))

	for _, order := range orders {
		trade, err := TradeFromBittrex(order)
		if err != nil {
			return nil, err
		}

		trades = append(trades, trade)
	}

	return trades, nil
}
