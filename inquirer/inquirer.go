package inquirer

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/lukehollenback/tally/constants"
	"github.com/shopspring/decimal"

	coinbasepro "github.com/preichenberger/go-coinbasepro/v2"
)

const (
	Name = "≪inquirer≫"

	DefaultBaseURL = "https://api.pro.coinbase.com"
	BTCUSDProduct  = "BTC-USD"
)

var (
	logger *log.Logger
)

func init() {
	//
	// Initialize the logger.
	//
	logger = log.New(log.Writer(), fmt.Sprintf(constants.LogPrefixFmt, Name), log.Ldate|log.Ltime|log.Lmsgprefix)
}

//
// TickerSource provides the latest ticker of a Coinbase Pro product on demand. The Coinbase Pro REST
// client satisfies this interface.
//
type TickerSource interface {
	GetTicker(product string) (coinbasepro.Ticker, error)
}

//
// LivePriceSource provides the most recent streamed price of a Coinbase Pro product, if one has been
// seen yet.
//
type LivePriceSource interface {
	LastPrice(product string) (decimal.Decimal, bool)
}

//
// Inquirer finds the USD price of assets. Prices are derived from an asset's BTC price whenever it
// is known, so that only the BTC-USD price has to be looked up.
//
type Inquirer struct {
	rest TickerSource
	live LivePriceSource
}

//
// New instantiates a new inquirer. The live price source is optional and, when present, is
// preferred over REST lookups for the BTC-USD price.
//
func New(rest TickerSource, live LivePriceSource) *Inquirer {
	return &Inquirer{
		rest: rest,
		live: live,
	}
}

//
// NewCoinbase instantiates a new inquirer that performs REST lookups against the Coinbase Pro API
// at the provided base URL.
//
func NewCoinbase(baseURL string, httpClient *http.Client, live LivePriceSource) *Inquirer {
	client := coinbasepro.NewClient()

	if baseURL != "" {
		client.BaseURL = strings.TrimSuffix(baseURL, "/")
	}

	if httpClient != nil {
		client.HTTPClient = httpClient
	}

	return New(client, live)
}

//
// FindUSDPrice returns the USD price of one unit of the specified asset. The asset's BTC price
// should be provided when it is known.
//
func (o *Inquirer) FindUSDPrice(asset string, assetBTCPrice *decimal.Decimal) (decimal.Decimal, error) {
	switch {
	case asset == "USD":
		return constants.One(), nil

	case assetBTCPrice != nil:
		btcUSD, err := o.btcUSDPrice()
		if err != nil {
			return decimal.Zero, err
		}

		return assetBTCPrice.Mul(btcUSD), nil

	case asset == "BTC":
		return o.btcUSDPrice()

	default:
		return o.tickerPrice(asset + "-USD")
	}
}

//
// btcUSDPrice returns the BTC-USD price, preferring the live feed over a REST lookup.
//
func (o *Inquirer) btcUSDPrice() (decimal.Decimal, error) {
	if o.live != nil {
		if price, ok := o.live.LastPrice(BTCUSDProduct); ok {
			return price, nil
		}
	}

	return o.tickerPrice(BTCUSDProduct)
}

func (o *Inquirer) tickerPrice(product string) (decimal.Decimal, error) {
	ticker, err := o.rest.GetTicker(product)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to retrieve the %s ticker: %w", product, err)
	}

	price, err := decimal.NewFromString(ticker.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse the %s ticker price \"%s\": %w", product, ticker.Price, err)
	}

	logger.Printf("%s is trading at %s.", product, aurora.Bold(aurora.Green(price)))

	return price, nil
}
