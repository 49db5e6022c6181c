package constants

import (
	"github.com/shopspring/decimal"
)

const (
	LogPrefixFmt = "%-17s "
)

var (
	zero = decimal.Zero
	one  = decimal.NewFromInt(1)
)

func Zero() decimal.Decimal {
	return zero
}

func One() decimal.Decimal {
	return one
}
