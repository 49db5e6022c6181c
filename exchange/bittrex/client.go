package bittrex

import (
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/logrusorgru/aurora"
	"github.com/lukehollenback/tally/constants"
	"github.com/lukehollenback/tally/exchange"
	"github.com/shopspring/decimal"
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
// PriceOracle provides USD prices for assets. The BTC price of the asset is provided when it is
// known so that the oracle can avoid a lookup of its own.
//
type PriceOracle interface {
	FindUSDPrice(asset string, assetBTCPrice *decimal.Decimal) (decimal.Decimal, error)
}

//
// TradeCache is the persistent store of previously retrieved trade history.
//
type TradeCache interface {

	//
	// Covering returns the cached orders and a true sentinel if a cached answer covers the
	// [start, endAtLeast] window.
	//
	Covering(start int64, endAtLeast int64) ([]Order, bool, error)

	//
	// Merge stores the provided, already time-filtered, orders as the answer for [start, end].
	//
	Merge(orders []Order, start int64, end int64) error
}

//
// Client implements the exchange.Client interface for the Bittrex v1.1 API.
//
// NOTE ~> A client is not safe for concurrent use. The market summary snapshot taken during a
//  balance query lives on the instance, and the wall-clock derived nonce is not collision-proof.
//
type Client struct {
	apiKey   string
	secret   []byte
	uri      string
	executor Executor
	oracle   PriceOracle
	cache    TradeCache
	nonce    func() int64
	scanMode ScanMode

	markets             []MarketSummary
	firstConnectionMade bool
}

//
// Option configures optional aspects of a Client.
//
type Option func(*Client)

//
// WithURI overrides the base URI (e.g. "https://bittrex.com/api/v1.1/") that method paths are
// appended to.
//
func WithURI(uri string) Option {
	return func(o *Client) {
		if !strings.HasSuffix(uri, "/") {
			uri += "/"
		}

		o.uri = uri
	}
}

//
// WithExecutor overrides the executor that signed requests are sent through.
//
func WithExecutor(executor Executor) Option {
	return func(o *Client) {
		o.executor = executor
	}
}

//
// WithNonce overrides the nonce source. The default is the current time in milliseconds.
//
func WithNonce(nonce func() int64) Option {
	return func(o *Client) {
		o.nonce = nonce
	}
}

//
// WithScanMode overrides how trade history results outside the requested window are handled.
//
func WithScanMode(mode ScanMode) Option {
	return func(o *Client) {
		o.scanMode = mode
	}
}

//
// NewClient instantiates a new Bittrex client with the provided credentials. The secret is used
// directly as the HMAC key. A nil cache disables trade history caching.
//
func NewClient(apiKey string, secret []byte, oracle PriceOracle, cache TradeCache, opts ...Option) *Client {
	o := &Client{
		apiKey:   apiKey,
		secret:   secret,
		uri:      fmt.Sprintf("%s/%s/", DefaultBaseURL, DefaultAPIVersion),
		executor: NewHTTPExecutor(nil),
		oracle:   oracle,
		cache:    cache,
		nonce: func() int64 {
			return time.Now().UnixMilli()
		},
		scanMode: EarlyStop,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

func (o *Client) Name() string {
	return Location
}

//
// FirstConnection marks that the client has been used to talk to Bittrex at least once.
//
func (o *Client) FirstConnection() {
	o.firstConnectionMade = true
}

func (o *Client) FirstConnectionMade() bool {
	return o.firstConnectionMade
}

//
// ValidateAPIKey implements the exchange.Client interface's described method.
//
func (o *Client) ValidateAPIKey() (bool, string, error) {
	params := url.Values{}
	params.Set("currency", "BTC")

	_, err := o.Call(MethodGetBalance, params)
	if err == nil {
		return true, "", nil
	}

	if remoteErr, ok := exchange.IsRemoteError(err); ok {
		switch remoteErr.Kind {
		case exchange.KindInvalidAPIKey:
			return false, "Provided API Key is invalid", nil
		case exchange.KindInvalidSignature:
			return false, "Provided API Secret is invalid", nil
		}
	}

	return false, "", err
}

//
// Call queries the specified Bittrex API method with the provided parameters and returns the raw
// result payload of the response. Methods that require credentials automatically get the API key
// and a nonce prepended to their parameters. Every request is signed.
//
func (o *Client) Call(method string, params url.Values) (json.RawMessage, error) {
	//
	// Build the request URL.
	//
	// NOTE ~> The API key and nonce must lead the query string. The caller's parameters follow in
	//  their (sorted) encoded form.
	//
	methodTier := tierOf(method)
	requestURL := o.uri + methodTier.String() + "/" + method + "?"

	if methodTier != public {
		nonce := strconv.FormatInt(o.nonce(), 10)
		requestURL += "apikey=" + url.QueryEscape(o.apiKey) + "&nonce=" + nonce + "&"
	}

	requestURL += params.Encode()

	//
	// Sign and send the request.
	//
	body, err := o.executor.Send(requestURL, sign(o.secret, requestURL))
	if err != nil {
		return nil, exchange.WrapRemoteError(exchange.KindTransport, "Bittrex request failed", err)
	}

	//
	// Unwrap the response envelope.
	//
	var env envelope

	if err := json.Unmarshal(body, &env); err != nil {
		return nil, exchange.NewRemoteError(exchange.KindInvalidResponse, "Bittrex returned invalid JSON response")
	}

	if !env.Success {
		return nil, exchange.NewRemoteError(classify(env.Message), env.Message)
	}

	return env.Result, nil
}

//
// callInto calls the specified method and decodes its result payload into the provided value.
//
func (o *Client) callInto(method string, params url.Values, out interface{}) error {
	result, err := o.Call(method, params)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(result, out); err != nil {
		return exchange.WrapRemoteError(
			exchange.KindInvalidResponse,
			fmt.Sprintf("Bittrex returned an unexpected %s result", method),
			err,
		)
	}

	return nil
}

//
// QueryTrades implements the exchange.Client interface's described method.
//
func (o *Client) QueryTrades(start int64, end int64, endAtLeast int64) ([]exchange.Trade, error) {
	orders, err := o.QueryTradeHistory(start, end, endAtLeast)
	if err != nil {
		return nil, err
	}

	trades, err := TradesFromBittrex(orders)
	if err != nil {
		return nil, err
	}

	logger.Printf("Normalized %d trades.", aurora.Bold(aurora.Cyan(len(trades))))

	return trades, nil
}
