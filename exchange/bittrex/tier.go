package bittrex

//
// tier is an enum that represents the authentication tier of a Bittrex API method. The tier is also
// the path segment that the method lives under.
//
type tier int

const (
	public  tier = iota // No credentials required. Requests are still signed, but carry no API key.
	market              // Requires trading permissions.
	account             // Requires balance/withdrawal permissions.
)

func (o tier) String() string {
	return [...]string{"public", "market", "account"}[o]
}

var (
	marketMethods = map[string]struct{}{
		"getopenorders": {},
		"cancel":        {},
		"sellmarket":    {},
		"selllimit":     {},
		"buymarket":     {},
		"buylimit":      {},
	}

	accountMethods = map[string]struct{}{
		"getbalances":       {},
		"getbalance":        {},
		"getdepositaddress": {},
		"withdraw":          {},
		"getorderhistory":   {},
	}
)

//
// tierOf classifies the specified method into its authentication tier. Anything that is not a
// known market or account method is public.
//
func tierOf(method string) tier {
	if _, ok := marketMethods[method]; ok {
		return market
	}

	if _, ok := accountMethods[method]; ok {
		return account
	}

	return public
}
