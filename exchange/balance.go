package exchange

import "github.com/shopspring/decimal"

//
// Balance represents the amount of a single asset held on an exchange along with its value in USD
// at the time the balance was queried. Balances are built fresh on every query and never mutated.
//
type Balance struct {
	Amount   decimal.Decimal
	USDValue decimal.Decimal
}
