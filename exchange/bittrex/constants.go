package bittrex

const (
	Name     = "≪bittrex≫"
	Location = "bittrex"

	APISignHeader = "apisign"

	DefaultBaseURL    = "https://bittrex.com/api"
	DefaultAPIVersion = "v1.1"

	// NOTE ~> The fractional seconds are optional when parsing, so this layout accepts both
	//  "2014-07-09T04:01:00" and "2014-07-09T04:01:00.5". All timestamps are UTC.
	TimestampLayout = "2006-01-02T15:04:05"

	OrderTypeLimitBuy  = "LIMIT_BUY"
	OrderTypeLimitSell = "LIMIT_SELL"

	MethodGetMarketSummaries = "getmarketsummaries"
	MethodGetBalances        = "getbalances"
	MethodGetBalance         = "getbalance"
	MethodGetOrderHistory    = "getorderhistory"
)
