package tradecache

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/lukehollenback/tally/constants"
	"github.com/lukehollenback/tally/exchange/bittrex"
)

const (
	Name = "≪trade-cache≫"
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
// document is the on-disk representation of the cache: a single window and the orders that were
// found within it.
//
type document struct {
	StartTime int64           `json:"start_time"`
	EndTime   int64           `json:"end_time"`
	Data      []bittrex.Order `json:"data"`
}

//
// Store is a file-backed trade history cache. It holds exactly one contiguous window of all-market
// trade history.
//
type Store struct {
	mu   *sync.Mutex
	path string
}

//
// New instantiates a new trade cache that persists to "<name>_trades.json" inside the provided
// data directory, creating the directory if necessary.
//
func New(dataDir string, name string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create the trade cache directory: %w", err)
	}

	return &Store{
		mu:   &sync.Mutex{},
		path: filepath.Join(dataDir, name+"_trades.json"),
	}, nil
}

//
// Path returns the location of the cache file.
//
func (o *Store) Path() string {
	return o.path
}

//
// Covering implements the bittrex.TradeCache interface's described method.
//
func (o *Store) Covering(start int64, endAtLeast int64) ([]bittrex.Order, bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	doc, ok, err := o.load()
	if err != nil || !ok {
		return nil, false, err
	}

	if start >= doc.StartTime && endAtLeast <= doc.EndTime {
		return doc.Data, true, nil
	}

	return nil, false, nil
}

//
// Merge implements the bittrex.TradeCache interface's described method. If the stored window
// overlaps or touches the new one, the two are joined and their orders deduplicated. Otherwise the
// new window replaces the stored one.
//
func (o *Store) Merge(orders []bittrex.Order, start int64, end int64) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	doc, ok, err := o.load()
	if err != nil {
		return err
	}

	merged := document{
		StartTime: start,
		EndTime:   end,
		Data:      orders,
	}

	if ok && start <= doc.EndTime+1 && end >= doc.StartTime-1 {
		if doc.StartTime < merged.StartTime {
			merged.StartTime = doc.StartTime
		}

		if doc.EndTime > merged.EndTime {
			merged.EndTime = doc.EndTime
		}

		merged.Data = union(doc.Data, orders)
	}

	logger.Printf(
		"Caching %d orders for [%d, %d].", len(merged.Data), merged.StartTime, merged.EndTime,
	)

	return o.save(merged)
}

//
// union combines two sets of orders, preferring the fresher copy of an order, and sorts the result
// newest first.
//
func union(stored []bittrex.Order, fresh []bittrex.Order) []bittrex.Order {
	byUUID := make(map[string]int, len(stored)+len(fresh))
	out := make([]bittrex.Order, 0, len(stored)+len(fresh))

	for _, set := range [][]bittrex.Order{stored, fresh} {
		for _, order := range set {
			if i, ok := byUUID[order.OrderUUID]; ok {
				out[i] = order

				continue
			}

			byUUID[order.OrderUUID] = len(out)
			out = append(out, order)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimeStamp > out[j].TimeStamp
	})

	return out
}

func (o *Store) load() (document, bool, error) {
	var doc document

	data, err := os.ReadFile(o.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, false, nil
	} else if err != nil {
		return doc, false, fmt.Errorf("failed to read the trade cache: %w", err)
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, false, fmt.Errorf("failed to parse the trade cache at %s: %w", o.path, err)
	}

	return doc, true, nil
}

//
// save writes the document to a temporary file and then moves it into place so that readers never
// see a partially written cache.
//
func (o *Store) save(doc document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode the trade cache: %w", err)
	}

	tmp := o.path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write the trade cache: %w", err)
	}

	if err := os.Rename(tmp, o.path); err != nil {
		return fmt.Errorf("failed to replace the trade cache: %w", err)
	}

	return nil
}
