package exchange

//
// Client generically provides an interface to an object that can be used to pull portfolio data out
// of a cryptocurrency exchange's regular REST API. Normally, this means validating credentials,
// checking balances, and retrieving historical trade data.
//
// Implementations are not expected to be safe for concurrent use. Callers that need concurrency
// must serialize calls to a given client or give each goroutine its own client.
//
type Client interface {

	//
	// Name returns the location tag that identifies the exchange (e.g. "bittrex").
	//
	Name() string

	//
	// ValidateAPIKey checks the configured credentials against the exchange. A false sentinel and a
	// human-readable message are returned when the exchange explicitly rejects the API key or the
	// API secret. Any other failure is returned as an error.
	//
	ValidateAPIKey() (bool, string, error)

	//
	// QueryBalances returns the current balance of every asset held on the exchange, valued in USD.
	// Failures are reported softly – a nil map and a message – so that balance displays can degrade
	// gracefully instead of failing outright.
	//
	QueryBalances() (map[string]Balance, string)

	//
	// QueryTrades returns the trades that occurred within the inclusive [start, end] window (in
	// seconds since the epoch) as canonical trades. The endAtLeast timestamp is the minimum end of a
	// cached window that is acceptable to answer the query from cache.
	//
	QueryTrades(start int64, end int64, endAtLeast int64) ([]Trade, error)
}
