package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/lukehollenback/tally/config"
	"github.com/lukehollenback/tally/constants"
	"github.com/lukehollenback/tally/exchange"
	"github.com/lukehollenback/tally/exchange/bittrex"
	"github.com/lukehollenback/tally/exchange/tradecache"
	"github.com/lukehollenback/tally/inquirer"
	"github.com/lukehollenback/tally/tracker"
	"github.com/lukehollenback/tally/tracker/ticker"
	"github.com/lukehollenback/tally/tracker/writer"
)

const (
	Name = "≪tally≫"
)

var (
	logger *log.Logger

	cfgConfigPath   *string
	cfgEnvPath      *string
	cfgValidate     *bool
	cfgBalances     *bool
	cfgHistoryStart *int64
	cfgHistoryEnd   *int64
	cfgMarket       *string
	cfgCount        *int
	cfgLivePrices   *bool
)

func init() {
	//
	// Initialize the logger.
	//
	logger = log.New(log.Writer(), fmt.Sprintf(constants.LogPrefixFmt, Name), log.Ldate|log.Ltime|log.Lmsgprefix)

	//
	// Register configuration flags.
	//
	cfgConfigPath = flag.String("config", "", "The path of the YAML configuration file.")
	cfgEnvPath = flag.String("env", ".env", "The path of an optional dotenv file holding Bittrex credentials.")
	cfgValidate = flag.Bool("validate", false, "Validate the configured Bittrex API key and secret.")
	cfgBalances = flag.Bool("balances", false, "Query the Bittrex account balances and value them in USD.")
	cfgHistoryStart = flag.Int64("history-start", -1, "The start (seconds since the epoch) of the trade history window to query. Negative disables the query.")
	cfgHistoryEnd = flag.Int64("history-end", 0, "The end (seconds since the epoch) of the trade history window to query. Zero means now.")
	cfgMarket = flag.String("market", "", "Restrict the trade history query to a single pair (e.g. BTC_LTC).")
	cfgCount = flag.Int("count", 0, "Bound the number of trade history records requested from Bittrex.")
	cfgLivePrices = flag.Bool("live-prices", false, "Stream BTC-USD prices from the Coinbase Pro websocket feed.")
}

func main() {
	flag.Parse()

	//
	// Register a kill signal handler with the operating system so that we can gracefully shutdown if
	// necessary.
	//
	osInterrupt := make(chan os.Signal, 1)

	signal.Notify(osInterrupt, os.Interrupt)

	//
	// Load the configuration.
	//
	cfg, err := config.Load(*cfgConfigPath, *cfgEnvPath)
	if err != nil {
		logger.Fatalf("Failed to load the configuration. (Error: %s)", err)
	}

	//
	// Start up all necessary services.
	//
	var (
		services []tracker.Service
		live     inquirer.LivePriceSource
	)

	if *cfgLivePrices {
		feed := ticker.Instance()
		feed.Configure(cfg.Coinbase.FeedURL, cfg.Coinbase.Products)

		services = append(services, feed)
		live = feed
	}

	if *cfgHistoryStart >= 0 {
		services = append(services, writer.Instance())
	}

	for _, service := range services {
		chStarted, err := service.Start()
		if err != nil {
			logger.Fatalf("Failed to start a service. (Error: %s)", err)
		}

		<-chStarted
	}

	//
	// Wire up the Bittrex client.
	//
	cache, err := tradecache.New(cfg.DataDir, bittrex.Location)
	if err != nil {
		logger.Fatalf("Failed to open the trade cache. (Error: %s)", err)
	}

	httpClient := &http.Client{Timeout: cfg.Bittrex.HTTPTimeout}

	client := bittrex.NewClient(
		cfg.Bittrex.APIKey,
		[]byte(cfg.Bittrex.APISecret),
		inquirer.NewCoinbase(cfg.Coinbase.BaseURL, httpClient, live),
		cache,
		bittrex.WithURI(cfg.BittrexURI()),
		bittrex.WithExecutor(bittrex.NewHTTPExecutor(httpClient)),
		bittrex.WithScanMode(cfg.ScanMode()),
	)

	cached := exchange.WithBalanceCache(client, cfg.BalanceCacheTTL)

	//
	// Run the requested queries in the background so that an interrupt can cut them short.
	//
	chDone := make(chan bool, 1)

	go func() {
		run(client, cached, jobFromFlags(), writer.Instance())

		chDone <- true
	}()

	select {
	case <-chDone:
	case <-osInterrupt:
		logger.Print("An operating system interrupt has been received. Shutting down all services...")
	}

	//
	// Report how the live price feed moved while we were running.
	//
	if *cfgLivePrices {
		reportLivePrices(ticker.Instance(), cfg.Coinbase.Products)
	}

	//
	// Stop all running services.
	//
	for i := len(services) - 1; i >= 0; i-- {
		chStopped, err := services[i].Stop()
		if err != nil {
			logger.Fatalf("Failed to stop a service. (Error: %s)", err)
		}

		<-chStopped
	}

	//
	// Wrap everything up.
	//
	logger.Print("Goodbye.")
}

//
// job describes the queries that a single run of the tool performs.
//
type job struct {
	validate     bool
	balances     bool
	history      bool
	historyStart int64
	historyEnd   int64
	market       string
	count        int
}

func jobFromFlags() job {
	return job{
		validate:     *cfgValidate,
		balances:     *cfgBalances,
		history:      *cfgHistoryStart >= 0,
		historyStart: *cfgHistoryStart,
		historyEnd:   *cfgHistoryEnd,
		market:       *cfgMarket,
		count:        *cfgCount,
	}
}

//
// tradeSink receives the trades found by a trade history query.
//
type tradeSink interface {
	Write(trade exchange.Trade) error
}

//
// run performs the queries described by the job. The client is marked as connected once Bittrex
// has answered any of them.
//
func run(client *bittrex.Client, cached exchange.Client, j job, sink tradeSink) {
	connected := func(ok bool) {
		if ok && !client.FirstConnectionMade() {
			client.FirstConnection()

			logger.Printf("%s", aurora.Green("Connected to Bittrex."))
		}
	}

	if j.validate {
		connected(validate(cached))
	}

	if j.balances {
		connected(balances(cached))
	}

	if j.history {
		connected(history(client, cached, j, sink))
	}
}

//
// validate reports whether the configured credentials are usable. It returns true when Bittrex
// answered the request, even if it rejected the credentials.
//
func validate(client exchange.Client) bool {
	valid, msg, err := client.ValidateAPIKey()
	if err != nil {
		logger.Printf("%s (Error: %s)", aurora.Red("Could not validate the API key."), err)

		return false
	}

	if !valid {
		logger.Printf("%s", aurora.Red(msg))

		return true
	}

	logger.Printf("%s", aurora.Green("The API key and secret are valid."))

	return true
}

func balances(client exchange.Client) bool {
	balances, msg := client.QueryBalances()
	if balances == nil {
		logger.Printf("%s", aurora.Red(msg))

		return false
	}

	assets := make([]string, 0, len(balances))
	for asset := range balances {
		assets = append(assets, asset)
	}

	sort.Strings(assets)

	total := constants.Zero()

	for _, asset := range assets {
		balance := balances[asset]
		total = total.Add(balance.USDValue)

		logger.Printf(
			"%-6s %s ($%s)",
			asset, aurora.Bold(aurora.Cyan(balance.Amount.String())), aurora.Green(balance.USDValue.StringFixed(2)),
		)
	}

	logger.Printf("Total: %s", aurora.Bold(aurora.Green("$"+total.StringFixed(2))))

	return true
}

func history(client *bittrex.Client, cached exchange.Client, j job, sink tradeSink) bool {
	end := j.historyEnd
	if end == 0 {
		end = time.Now().Unix()
	}

	var (
		trades []exchange.Trade
		err    error
	)

	if j.market == "" && j.count == 0 {
		trades, err = cached.QueryTrades(j.historyStart, end, end)
	} else {
		trades, err = filteredTrades(client, j, end)
	}

	if err != nil {
		logger.Printf("%s (Error: %s)", aurora.Red("Could not query the trade history."), err)

		_, remote := exchange.IsRemoteError(err)

		return !remote
	}

	for _, trade := range trades {
		logger.Print(trade)

		if err := sink.Write(trade); err != nil {
			logger.Printf("%s (Error: %s)", aurora.Red("Could not write a trade."), err)

			break
		}
	}

	return true
}

func filteredTrades(client *bittrex.Client, j job, end int64) ([]exchange.Trade, error) {
	var opts []bittrex.HistoryOption

	if j.market != "" {
		opts = append(opts, bittrex.WithMarket(j.market))
	}

	if j.count > 0 {
		opts = append(opts, bittrex.WithCount(j.count))
	}

	orders, err := client.QueryTradeHistory(j.historyStart, end, end, opts...)
	if err != nil {
		return nil, err
	}

	return bittrex.TradesFromBittrex(orders)
}

//
// reportLivePrices logs the latest and average streamed price of every watched product.
//
func reportLivePrices(feed *ticker.Service, products []string) {
	for _, product := range products {
		last, ok := feed.LastPrice(product)
		if !ok {
			logger.Printf("No live %s price was received.", product)

			continue
		}

		average, ticks, _ := feed.AveragePrice(product)

		logger.Printf(
			"%s last traded at %s (average %s over %d ticks).",
			product, aurora.Bold(aurora.Green(last.String())), aurora.Cyan(average.StringFixed(2)), ticks,
		)
	}
}
