package bittrex

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMarketSummaries = `{"success": true, "message": "", "result": [
		{"MarketName": "BTC-ETH", "Last": 0.05, "Bid": 0.049, "Ask": 0.051, "TimeStamp": "2017-07-14T11:01:07.5"},
		{"MarketName": "BTC-LTC", "Last": 0.02, "Bid": 0.019, "Ask": 0.021},
		{"MarketName": "USDT-BTC", "Last": 2000, "Bid": 1999, "Ask": 2001},
		{"MarketName": "BTC-DEAD", "Last": null}
	]}`
	testBalances = `{"success": true, "message": "", "result": [
		{"Currency": "BTC", "Balance": 2, "Available": 2, "Pending": 0, "CryptoAddress": null},
		{"Currency": "ETH", "Balance": 10, "Available": 10, "Pending": 0},
		{"Currency": "XYZ", "Balance": 100, "Available": 100, "Pending": 0},
		{"Currency": "DEAD", "Balance": 1, "Available": 1, "Pending": 0}
	]}`
)

func TestQueryBalances(t *testing.T) {
	executor := newFakeExecutor(map[string]string{
		"getmarketsummaries": testMarketSummaries,
		"getbalances":        testBalances,
	})
	oracle := &fakeOracle{
		btcUSD:   decimal.NewFromInt(2000),
		fallback: decimal.RequireFromString("0.5"),
	}
	client := NewClient("key", testSecret, oracle, nil, WithURI(testURI), WithExecutor(executor))

	balances, msg := client.QueryBalances()

	require.Empty(t, msg)
	require.Len(t, balances, 4)

	assert.Equal(t, "2", balances["BTC"].Amount.String())
	assert.Equal(t, "4000", balances["BTC"].USDValue.String())
	assert.Equal(t, "10", balances["ETH"].Amount.String())
	assert.Equal(t, "1000", balances["ETH"].USDValue.String())
	assert.Equal(t, "50", balances["XYZ"].USDValue.String())
	assert.Equal(t, "0.5", balances["DEAD"].USDValue.String())

	assert.Equal(t, []string{"getmarketsummaries", "getbalances"}, executor.sentMethods())

	//
	// BTC must never be priced against itself, and assets without a (priced) BTC market must get
	// no BTC price at all.
	//
	prices := make(map[string]*decimal.Decimal)
	for _, call := range oracle.calls {
		prices[call.asset] = call.btcPrice
	}

	assert.Nil(t, prices["BTC"])
	require.NotNil(t, prices["ETH"])
	assert.Equal(t, "0.05", prices["ETH"].String())
	assert.Nil(t, prices["XYZ"])
	assert.Nil(t, prices["DEAD"])
}

func TestQueryBalancesReportsRemoteFailuresSoftly(t *testing.T) {
	executor := newFakeExecutor(map[string]string{
		"getmarketsummaries": testMarketSummaries,
		"getbalances":        `{"success": false, "message": "APIKEY_INVALID", "result": null}`,
	})
	client := NewClient("key", testSecret, &fakeOracle{}, nil, WithURI(testURI), WithExecutor(executor))

	balances, msg := client.QueryBalances()

	assert.Nil(t, balances)
	assert.Equal(t, "Bittrex API request failed. Could not reach bittrex due to APIKEY_INVALID", msg)
}

func TestQueryBalancesReportsTransportFailuresSoftly(t *testing.T) {
	executor := newFakeExecutor(nil)
	executor.err = errors.New("dial tcp: i/o timeout")
	client := NewClient("key", testSecret, &fakeOracle{}, nil, WithURI(testURI), WithExecutor(executor))

	balances, msg := client.QueryBalances()

	assert.Nil(t, balances)
	assert.Contains(t, msg, "dial tcp: i/o timeout")
	assert.Len(t, executor.sent, 1)
}

func TestQueryBalancesReportsOracleFailuresSoftly(t *testing.T) {
	executor := newFakeExecutor(map[string]string{
		"getmarketsummaries": testMarketSummaries,
		"getbalances":        testBalances,
	})
	oracle := &fakeOracle{err: errors.New("ticker unavailable")}
	client := NewClient("key", testSecret, oracle, nil, WithURI(testURI), WithExecutor(executor))

	balances, msg := client.QueryBalances()

	assert.Nil(t, balances)
	assert.Contains(t, msg, "ticker unavailable")
}

func TestBTCPriceUsesLatestSnapshot(t *testing.T) {
	client := NewClient("key", testSecret, &fakeOracle{}, nil)
	client.markets = []MarketSummary{
		{MarketName: "BTC-ETH", Last: decimal.NewNullDecimal(decimal.RequireFromString("0.07"))},
	}

	price := client.btcPrice("ETH")
	require.NotNil(t, price)
	assert.Equal(t, "0.07", price.String())

	assert.Nil(t, client.btcPrice("BTC"))
	assert.Nil(t, client.btcPrice("LTC"))
}
