package writer

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/logrusorgru/aurora"
	"github.com/lukehollenback/tally/constants"
	"github.com/lukehollenback/tally/exchange"
)

const (
	Name     = "≪writer-service≫"
	FileName = "tally.csv"
)

var (
	o      *Service
	once   sync.Once
	logger *log.Logger

	cfgOutputDir *string
)

func init() {
	//
	// Initialize the logger.
	//
	logger = log.New(log.Writer(), fmt.Sprintf(constants.LogPrefixFmt, Name), log.Ldate|log.Ltime|log.Lmsgprefix)

	//
	// Determine the current working directory. If that cannot be done for some reason, we are in a
	// critical failure state.
	//
	workingDir, err := os.Getwd()
	if err != nil {
		logger.Fatalf("Failed to determine the current working directory. (Error: %s)", err)
	}

	//
	// Register configuration flags.
	//
	cfgOutputDir = flag.String(
		"writer-dir",
		workingDir,
		fmt.Sprintf("The directory the %s should write the trade history CSV file to.", Name),
	)
}

//
// Service represents a trade history writer service instance. Canonical trades handed to it are
// written out as CSV rows.
//
// NOTE ~> The CSV writer uses encoding/csv from the standard library; no library in use elsewhere in
//  the module provides CSV output.
//
type Service struct {
	mu         *sync.Mutex
	chKill     chan bool
	chStopped  chan bool
	outputDir  string
	outputFile *os.File
	writer     *csv.Writer
	written    int
}

//
// Instance returns a singleton instance of the service that writes to the directory provided on the
// command line.
//
func Instance() *Service {
	once.Do(func() {
		o = New(*cfgOutputDir)
	})

	return o
}

//
// New instantiates a new, stopped writer service that will write to the provided directory.
//
func New(outputDir string) *Service {
	return &Service{
		mu:        &sync.Mutex{},
		outputDir: outputDir,
	}
}

//
// Path returns the path of the CSV file that the service writes to.
//
func (o *Service) Path() string {
	return filepath.Join(o.outputDir, FileName)
}

//
// Start implements the Service interface's described method.
//
func (o *Service) Start() (<-chan bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	//
	// (Re)initialize our instance variables.
	//
	o.chKill = make(chan bool, 1)
	o.chStopped = make(chan bool, 1)
	o.written = 0

	//
	// Create the output CSV file.
	//
	var err error

	o.outputFile, err = os.Create(o.Path())
	if err != nil {
		return nil, err
	}

	logger.Printf("Outputting CSV to %s.", o.Path())

	//
	// Create the CSV writer and use it to write out the header row.
	//
	o.writer = csv.NewWriter(o.outputFile)

	header := make([]string, 0, len(columns))
	for _, column := range columns {
		header = append(header, column.String())
	}

	if err := o.writer.Write(header); err != nil {
		return nil, err
	}

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
// Write adds a row for the provided trade to the CSV file.
//
func (o *Service) Write(trade exchange.Trade) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.writer == nil {
		return errors.New("cannot write a trade before the writer service has been started")
	}

	row := []string{
		strconv.FormatInt(trade.Timestamp, 10),
		trade.Location,
		trade.Pair,
		trade.Type.String(),
		trade.Amount.String(),
		trade.Rate.String(),
		trade.Cost.String(),
		trade.CostCurrency,
		trade.Fee.String(),
		trade.FeeCurrency,
	}

	if err := o.writer.Write(row); err != nil {
		return err
	}

	o.written++

	return nil
}

//
// service executes the top-level logic of the service. It is intended to be spun off into its own
// goroutine when the service is started.
//
func (o *Service) service() {
	//
	// Yield indefinitely.
	//
	<-o.chKill

	o.mu.Lock()
	defer o.mu.Unlock()

	//
	// Flush the CSV writer's buffer to the output file.
	//
	o.writer.Flush()
	if err := o.writer.Error(); err != nil {
		logger.Printf("Failed to flush the CSV writer. (Error: %s)", err)
	}

	//
	// Close the handle on the output file.
	//
	if err := o.outputFile.Close(); err != nil {
		logger.Printf("Failed to close handle on output file. (Error: %s)", err)
	}

	logger.Printf("Wrote %d trades.", aurora.Bold(aurora.Cyan(o.written)))

	o.writer = nil
	o.outputFile = nil

	//
	// Send the signal that we have shut down.
	//
	o.chStopped <- true
}
