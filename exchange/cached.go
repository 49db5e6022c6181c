package exchange

import (
	"time"

	"github.com/lukehollenback/tally/structs/timedcache"
)

type balancesResult struct {
	balances map[string]Balance
	msg      string
}

//
// cachedClient wraps a Client so that the results of successful balance queries are reused for a
// fixed amount of time. All other calls pass straight through.
//
type cachedClient struct {
	Client
	balances *timedcache.Value[balancesResult]
}

//
// WithBalanceCache wraps the provided client so that successful QueryBalances results are held for
// the specified lifetime. Soft failures are never held.
//
func WithBalanceCache(client Client, lifetime time.Duration) Client {
	return WithBalanceCacheClock(client, lifetime, nil)
}

//
// WithBalanceCacheClock behaves like WithBalanceCache but reads time from the provided clock.
//
func WithBalanceCacheClock(client Client, lifetime time.Duration, clock func() time.Time) Client {
	return &cachedClient{
		Client:   client,
		balances: timedcache.New[balancesResult](lifetime, clock),
	}
}

func (o *cachedClient) QueryBalances() (map[string]Balance, string) {
	result := o.balances.Get(
		func() balancesResult {
			balances, msg := o.Client.QueryBalances()

			return balancesResult{balances: balances, msg: msg}
		},
		func(r balancesResult) bool {
			return r.balances != nil
		},
	)

	return result.balances, result.msg
}
