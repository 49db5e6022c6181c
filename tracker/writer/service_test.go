package writer

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/lukehollenback/tally/exchange"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTrades(t *testing.T) {
	var buf bytes.Buffer

	logger.SetOutput(&buf)
	defer logger.SetOutput(log.Writer())

	service := New(t.TempDir())

	chStarted, err := service.Start()
	require.NoError(t, err)
	<-chStarted

	require.NoError(t, service.Write(exchange.Trade{
		Timestamp:    1500000000,
		Pair:         "BTC_LTC",
		Type:         exchange.Sell,
		Rate:         decimal.NewFromInt(10),
		Cost:         decimal.NewFromInt(46),
		CostCurrency: "BTC",
		Fee:          decimal.NewFromInt(2),
		FeeCurrency:  "BTC",
		Amount:       decimal.NewFromInt(3),
		Location:     "bittrex",
	}))

	chStopped, err := service.Stop()
	require.NoError(t, err)
	<-chStopped

	data, err := os.ReadFile(service.Path())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Timestamp,Location,Pair,Type,Amount,Rate,Cost,CostCurrency,Fee,FeeCurrency", lines[0])
	assert.Equal(t, "1500000000,bittrex,BTC_LTC,sell,3,10,46,BTC,2,BTC", lines[1])

	assert.Error(t, service.Write(exchange.Trade{}))

	assert.Contains(t, buf.String(), "Wrote ")
	assert.NotContains(t, buf.String(), "%!")
}

func TestWriteBeforeStart(t *testing.T) {
	assert.Error(t, New(t.TempDir()).Write(exchange.Trade{}))
}
