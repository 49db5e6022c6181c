package bittrex

import (
	"fmt"

	"github.com/logrusorgru/aurora"
	"github.com/lukehollenback/tally/exchange"
	"github.com/shopspring/decimal"
)

const (
	referenceAsset = "BTC"
)

//
// QueryBalances implements the exchange.Client interface's described method. Any failure along the
// way is logged and reported through the message rather than returned as an error.
//
func (o *Client) QueryBalances() (map[string]exchange.Balance, string) {
	balances, err := o.queryBalances()
	if err != nil {
		msg := fmt.Sprintf("Bittrex API request failed. Could not reach bittrex due to %s", err)

		logger.Printf("%s", aurora.Red(msg))

		return nil, msg
	}

	return balances, ""
}

func (o *Client) queryBalances() (map[string]exchange.Balance, error) {
	//
	// Take a fresh snapshot of the market summaries so BTC prices can be derived from it.
	//
	var markets []MarketSummary

	if err := o.callInto(MethodGetMarketSummaries, nil, &markets); err != nil {
		return nil, err
	}

	o.markets = markets

	var resp []BalanceRecord

	if err := o.callInto(MethodGetBalances, nil, &resp); err != nil {
		return nil, err
	}

	//
	// Value every balance in USD.
	//
	returnedBalances := make(map[string]exchange.Balance, len(resp))

	for _, entry := range resp {
		usdPrice, err := o.oracle.FindUSDPrice(entry.Currency, o.btcPrice(entry.Currency))
		if err != nil {
			return nil, fmt.Errorf("could not find the USD price of %s: %w", entry.Currency, err)
		}

		returnedBalances[entry.Currency] = exchange.Balance{
			Amount:   entry.Balance,
			USDValue: entry.Balance.Mul(usdPrice),
		}

		logger.Printf(
			"%s %s is worth %s.",
			aurora.Bold(aurora.Yellow(entry.Balance)), entry.Currency,
			aurora.Bold(aurora.Green(fmt.Sprintf("%s USD", returnedBalances[entry.Currency].USDValue))),
		)
	}

	return returnedBalances, nil
}

//
// btcPrice looks the BTC price of the specified asset up in the current market summary snapshot.
// Nil is returned for BTC itself and for assets that have no (priced) BTC market.
//
func (o *Client) btcPrice(asset string) *decimal.Decimal {
	if asset == referenceAsset {
		return nil
	}

	btcPair := referenceAsset + pairSeparator + asset

	for _, market := range o.markets {
		if market.MarketName != btcPair {
			continue
		}

		if !market.Last.Valid {
			return nil
		}

		price := market.Last.Decimal

		return &price
	}

	return nil
}
