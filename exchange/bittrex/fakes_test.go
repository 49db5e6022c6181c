package bittrex

import (
	"errors"
	"net/url"
	"path"
	"time"

	"github.com/shopspring/decimal"
)

var (
	testSecret = []byte("secret")
)

type sentRequest struct {
	url       string
	signature string
}

//
// fakeExecutor answers requests with canned bodies keyed by method name and remembers what was sent.
//
type fakeExecutor struct {
	responses map[string]string
	err       error
	sent      []sentRequest
}

func newFakeExecutor(responses map[string]string) *fakeExecutor {
	return &fakeExecutor{
		responses: responses,
	}
}

func (o *fakeExecutor) Send(requestURL string, signature string) ([]byte, error) {
	o.sent = append(o.sent, sentRequest{url: requestURL, signature: signature})

	if o.err != nil {
		return nil, o.err
	}

	parsed, err := url.Parse(requestURL)
	if err != nil {
		return nil, err
	}

	body, ok := o.responses[path.Base(parsed.Path)]
	if !ok {
		return nil, errors.New("no canned response")
	}

	return []byte(body), nil
}

func (o *fakeExecutor) sentMethods() []string {
	methods := make([]string, 0, len(o.sent))

	for _, req := range o.sent {
		parsed, _ := url.Parse(req.url)
		methods = append(methods, path.Base(parsed.Path))
	}

	return methods
}

type oracleCall struct {
	asset    string
	btcPrice *decimal.Decimal
}

//
// fakeOracle prices everything at a fixed USD price per BTC (or a fixed fallback) and remembers
// every lookup.
//
type fakeOracle struct {
	btcUSD   decimal.Decimal
	fallback decimal.Decimal
	err      error
	calls    []oracleCall
}

func (o *fakeOracle) FindUSDPrice(asset string, assetBTCPrice *decimal.Decimal) (decimal.Decimal, error) {
	o.calls = append(o.calls, oracleCall{asset: asset, btcPrice: assetBTCPrice})

	if o.err != nil {
		return decimal.Zero, o.err
	}

	if asset == "BTC" {
		return o.btcUSD, nil
	}

	if assetBTCPrice != nil {
		return assetBTCPrice.Mul(o.btcUSD), nil
	}

	return o.fallback, nil
}

//
// fakeCache covers a single fixed window and records merges.
//
type fakeCache struct {
	start  int64
	end    int64
	orders []Order
	filled bool
	merges []fakeMerge
}

type fakeMerge struct {
	orders []Order
	start  int64
	end    int64
}

func (o *fakeCache) Covering(start int64, endAtLeast int64) ([]Order, bool, error) {
	if o.filled && start >= o.start && endAtLeast <= o.end {
		return o.orders, true, nil
	}

	return nil, false, nil
}

func (o *fakeCache) Merge(orders []Order, start int64, end int64) error {
	o.merges = append(o.merges, fakeMerge{orders: orders, start: start, end: end})

	return nil
}

func fixedNonce(n int64) func() int64 {
	return func() int64 {
		return n
	}
}

func bittrexTime(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format(TimestampLayout)
}
