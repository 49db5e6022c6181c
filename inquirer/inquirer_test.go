package inquirer

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coinbasepro "github.com/preichenberger/go-coinbasepro/v2"
)

type fakeTickers struct {
	prices    map[string]string
	requested []string
}

func (o *fakeTickers) GetTicker(product string) (coinbasepro.Ticker, error) {
	o.requested = append(o.requested, product)

	price, ok := o.prices[product]
	if !ok {
		return coinbasepro.Ticker{}, errors.New("NotFound")
	}

	return coinbasepro.Ticker{Price: price}, nil
}

type fakeLive struct {
	price decimal.Decimal
	ok    bool
}

func (o *fakeLive) LastPrice(product string) (decimal.Decimal, bool) {
	return o.price, o.ok
}

func TestFindUSDPriceFromBTCPrice(t *testing.T) {
	rest := &fakeTickers{prices: map[string]string{"BTC-USD": "20000"}}
	inq := New(rest, nil)

	btcPrice := decimal.RequireFromString("0.05")

	price, err := inq.FindUSDPrice("ETH", &btcPrice)
	require.NoError(t, err)
	assert.Equal(t, "1000", price.String())
	assert.Equal(t, []string{"BTC-USD"}, rest.requested)
}

func TestFindUSDPriceOfBTC(t *testing.T) {
	rest := &fakeTickers{prices: map[string]string{"BTC-USD": "20000.50"}}

	price, err := New(rest, nil).FindUSDPrice("BTC", nil)
	require.NoError(t, err)
	assert.Equal(t, "20000.5", price.String())
}

func TestFindUSDPricePrefersLiveFeed(t *testing.T) {
	rest := &fakeTickers{prices: map[string]string{"BTC-USD": "20000"}}
	live := &fakeLive{price: decimal.NewFromInt(21000), ok: true}

	price, err := New(rest, live).FindUSDPrice("BTC", nil)
	require.NoError(t, err)
	assert.Equal(t, "21000", price.String())
	assert.Empty(t, rest.requested)

	live.ok = false

	price, err = New(rest, live).FindUSDPrice("BTC", nil)
	require.NoError(t, err)
	assert.Equal(t, "20000", price.String())
}

func TestFindUSDPriceFallsBackToUSDTicker(t *testing.T) {
	rest := &fakeTickers{prices: map[string]string{"LTC-USD": "50.25"}}

	price, err := New(rest, nil).FindUSDPrice("LTC", nil)
	require.NoError(t, err)
	assert.Equal(t, "50.25", price.String())

	_, err = New(rest, nil).FindUSDPrice("XYZ", nil)
	assert.Error(t, err)
}

func TestFindUSDPriceOfUSD(t *testing.T) {
	rest := &fakeTickers{}

	price, err := New(rest, nil).FindUSDPrice("USD", nil)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(1)))
	assert.Empty(t, rest.requested)
}

func TestNewCoinbaseUsesRESTTicker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/BTC-USD/ticker" {
			http.NotFound(w, r)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"trade_id": 4729088, "price": "333.99", "size": "0.193", "bid": "333.98", "ask": "333.99", "volume": "5957.11914015"}`))
	}))
	defer server.Close()

	price, err := NewCoinbase(server.URL, server.Client(), nil).FindUSDPrice("BTC", nil)
	require.NoError(t, err)
	assert.Equal(t, "333.99", price.String())
}
