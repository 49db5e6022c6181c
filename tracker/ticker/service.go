package ticker

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/logrusorgru/aurora"
	"github.com/lukehollenback/tally/constants"
	"github.com/lukehollenback/tally/structs/evictingqueue"
	"github.com/shopspring/decimal"

	ws "github.com/gorilla/websocket"
	coinbasepro "github.com/preichenberger/go-coinbasepro/v2"
)

const (
	Name = "≪ticker-service≫"

	DefaultFeedURL = "wss://ws-feed.pro.coinbase.com"
	historyLen     = 32
)

var (
	o      *Service
	once   sync.Once
	logger *log.Logger
)

func init() {
	//
	// Initialize the logger.
	//
	logger = log.New(log.Writer(), fmt.Sprintf(constants.LogPrefixFmt, Name), log.Ldate|log.Ltime|log.Lmsgprefix)
}

//
// Service represents a live ticker service instance. It streams ticker messages for a set of
// Coinbase Pro products and remembers the most recent prices of each.
//
type Service struct {
	mu        *sync.Mutex
	chKill    chan bool
	chStopped chan bool

	feedURL  string
	products []string

	state state
	conn  *ws.Conn

	prices map[string]*evictingqueue.EvictingQueue[decimal.Decimal]
}

//
// Instance returns a singleton instance of the ticker service.
//
func Instance() *Service {
	once.Do(func() {
		o = New(DefaultFeedURL, []string{"BTC-USD"})
	})

	return o
}

//
// New instantiates a new, stopped ticker service that will watch the specified products on the
// specified websocket feed.
//
func New(feedURL string, products []string) *Service {
	s := &Service{
		mu:    &sync.Mutex{},
		state: disconnected,
	}

	s.Configure(feedURL, products)

	return s
}

//
// Configure tells the ticker service which feed to connect to and which products to watch. It must
// only be called while the service is stopped.
//
func (o *Service) Configure(feedURL string, products []string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if feedURL == "" {
		feedURL = DefaultFeedURL
	}

	o.feedURL = feedURL
	o.products = products
	o.prices = make(map[string]*evictingqueue.EvictingQueue[decimal.Decimal], len(products))

	for _, product := range products {
		o.prices[product] = evictingqueue.New[decimal.Decimal](historyLen)
	}
}

//
// LastPrice returns the most recently streamed price of the specified product and a true sentinel,
// or a false sentinel if no price has been seen yet.
//
func (o *Service) LastPrice(product string) (decimal.Decimal, bool) {
	o.mu.Lock()
	queue, ok := o.prices[product]
	o.mu.Unlock()

	if !ok {
		return decimal.Zero, false
	}

	return queue.Newest()
}

//
// AveragePrice returns the mean of the recently streamed prices of the specified product along with
// the number of prices it was taken over. A false sentinel is returned if no price has been seen.
//
func (o *Service) AveragePrice(product string) (decimal.Decimal, int, bool) {
	o.mu.Lock()
	queue, ok := o.prices[product]
	o.mu.Unlock()

	if !ok {
		return decimal.Zero, 0, false
	}

	sum := decimal.Zero
	count := 0

	for i := 0; i < queue.Len(); i++ {
		price, ok := queue.Get(i)
		if !ok {
			break
		}

		sum = sum.Add(price)
		count++
	}

	if count == 0 {
		return decimal.Zero, 0, false
	}

	return sum.Div(decimal.NewFromInt(int64(count))), count, true
}

//
// Start implements the Service interface's described method.
//
func (o *Service) Start() (<-chan bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	//
	// Validate that necessary configurations have been provided.
	//
	if len(o.products) == 0 {
		return nil, errors.New("cannot start the ticker service without any products to watch")
	}

	//
	// (Re)initialize our instance variables.
	//
	o.chKill = make(chan bool, 1)
	o.chStopped = make(chan bool, 1)

	//
	// Fire off a goroutine as the executor for the service.
	//
	go o.service()

	//
	// Return our "started" channel in case the caller wants to block on it and log some debug info.
	//
	chStarted := make(chan bool, 1)
	chStarted <- true

	logger.Printf("Started.")

	return chStarted, nil
}

//
// Stop implements the Service interface's described method.
//
func (o *Service) Stop() (<-chan bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	//
	// Log some debug info.
	//
	logger.Printf("Stopping...")

	//
	// Tell the goroutines that were spun off by the service to shutdown.
	//
	o.chKill <- true

	//
	// Return the "stopped" channel that the caller can block on if they need to know that the
	// service has completely shutdown.
	//
	return o.chStopped, nil
}

//
// service connects to the Coinbase Pro websocket feed and records ticker prices until it is told to
// stop or the connection fails.
//
func (o *Service) service() {
	if err := o.monitorTicker(); err != nil {
		logger.Printf("%s (Error: %s)", aurora.Red("The live ticker has stopped."), err)
	}

	o.state = disconnected

	//
	// Send the signal that we have shut down.
	//
	o.chStopped <- true
}

func (o *Service) monitorTicker() error {
	var err error

	//
	// Connect to the Coinbase Pro websocket feed.
	//
	o.state = connecting

	o.conn, _, err = ws.DefaultDialer.Dial(o.feedURL, nil)
	if err != nil {
		return fmt.Errorf("could not connect to the Coinbase Pro websocket feed: %w", err)
	}

	defer func() {
		_ = o.conn.Close()
	}()

	o.state = connected

	//
	// Subscribe to heartbeat messages and ticker messages for all of the watched products.
	//
	subscribe := coinbasepro.Message{
		Type: "subscribe",
		Channels: []coinbasepro.MessageChannel{
			{
				Name:       "heartbeat",
				ProductIds: o.products,
			},
			{
				Name:       "ticker",
				ProductIds: o.products,
			},
		},
	}

	if err := o.conn.WriteJSON(subscribe); err != nil {
		return fmt.Errorf("could not subscribe to the Coinbase Pro ticker channel: %w", err)
	}

	//
	// Begin reading messages in the background so that we can also watch for the kill signal.
	//
	// NOTE ~> Closing the connection (deferred above) unblocks the reader when we are killed.
	//
	chMsg := make(chan *coinbasepro.Message)
	chErr := make(chan error, 1)
	chDone := make(chan struct{})

	defer close(chDone)

	go o.readMessages(chMsg, chErr, chDone)

	for {
		select {
		case <-o.chKill:
			return nil

		case msg := <-chMsg:
			o.handleMessage(msg)

		case err := <-chErr:
			return fmt.Errorf("could not read the next message from the Coinbase Pro websocket feed: %w", err)
		}
	}
}

func (o *Service) readMessages(chMsg chan<- *coinbasepro.Message, chErr chan<- error, chDone <-chan struct{}) {
	for {
		msg := &coinbasepro.Message{}

		if err := o.conn.ReadJSON(msg); err != nil {
			chErr <- err

			return
		}

		select {
		case chMsg <- msg:
		case <-chDone:
			return
		}
	}
}

func (o *Service) handleMessage(msg *coinbasepro.Message) {
	if msg.Type == "error" {
		logger.Printf("%s (Message: %s)", aurora.Red("The Coinbase Pro websocket feed reported an error."), msg.Message)

		return
	}

	if o.state == connected {
		if msg.Type == "subscriptions" {
			//
			// Move the ticker service into a "subscribed" state – indicating that it has successfully
			// received acknowledgement from the Coinbase Pro websocket API that it has subscribed to the
			// necessary message channels.
			//
			o.state = subscribed

			logger.Printf("Successfully subscribed to relevant Coinbase Pro websocket channels (Products: %v).", o.products)
		}
	} else if o.state == subscribed {
		if msg.Type == "ticker" {
			price, err := decimal.NewFromString(msg.Price)
			if err != nil {
				logger.Printf("Failed to parse price from message. (Message: %+v) (Error: %s)", msg, err)

				return
			}

			o.mu.Lock()
			queue, ok := o.prices[msg.ProductID]
			o.mu.Unlock()

			if ok {
				queue.Add(price)
			}
		}
	}
}
