package bittrex

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/lukehollenback/tally/exchange"
)

//
// ScanMode is an enum that represents how trade history records older than the requested window
// are handled while scanning a "getorderhistory" result. Records newer than the window are always
// skipped.
//
type ScanMode int

const (
	EarlyStop ScanMode = iota // Stop at the first record older than the window. Relies on Bittrex returning newest first.
	FullScan                  // Skip records outside the window and keep scanning.
)

func (o ScanMode) String() string {
	return [...]string{"early_stop", "full_scan"}[o]
}

//
// ParseScanMode parses the textual representation of a scan mode.
//
func ParseScanMode(mode string) (ScanMode, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "early_stop":
		return EarlyStop, nil
	case "full_scan":
		return FullScan, nil
	default:
		return EarlyStop, fmt.Errorf("unknown trade history scan mode \"%s\"", mode)
	}
}

type historyQuery struct {
	market string
	count  int
}

//
// HistoryOption narrows a trade history query.
//
type HistoryOption func(*historyQuery)

//
// WithMarket restricts a trade history query to a single canonical pair. Restricted queries always
// go to Bittrex, and their results are never merged into the trade cache: the cache only holds
// all-market answers, so a single-market result stored there would later be served as a complete
// history for its window.
//
func WithMarket(pair string) HistoryOption {
	return func(q *historyQuery) {
		q.market = pair
	}
}

//
// WithCount bounds the number of records that Bittrex is asked to return.
//
func WithCount(count int) HistoryOption {
	return func(q *historyQuery) {
		q.count = count
	}
}

//
// ParseTimestamp converts a Bittrex timestamp into seconds since the epoch.
//
func ParseTimestamp(timestamp string) (int64, error) {
	parsed, err := time.ParseInLocation(TimestampLayout, timestamp, time.UTC)
	if err != nil {
		return 0, err
	}

	return parsed.Unix(), nil
}

//
// QueryTradeHistory returns the orders from the Bittrex order history that fall within the
// inclusive [start, end] window, newest first, with their timestamps converted into seconds since
// the epoch. A cached answer covering [start, endAtLeast] is returned without talking to Bittrex
// unless the query is restricted to a market.
//
func (o *Client) QueryTradeHistory(start int64, end int64, endAtLeast int64, opts ...HistoryOption) ([]Order, error) {
	query := &historyQuery{}

	for _, opt := range opts {
		opt(query)
	}

	params := url.Values{}

	//
	// Figure out if the cache can answer the query.
	//
	var (
		cached  []Order
		covered bool
		err     error
	)

	if o.cache != nil {
		cached, covered, err = o.cache.Covering(start, endAtLeast)
		if err != nil {
			return nil, err
		}
	}

	if query.market != "" {
		params.Set("market", WorldPairToBittrex(query.market))
	} else if covered {
		logger.Printf("Answered trade history [%d, %d] from cache.", start, endAtLeast)

		return cached, nil
	}

	if query.count > 0 {
		params.Set("count", strconv.Itoa(query.count))
	}

	//
	// Query Bittrex and trim the result down to the requested window.
	//
	var records []orderRecord

	if err := o.callInto(MethodGetOrderHistory, params, &records); err != nil {
		return nil, err
	}

	returnedHistory := make([]Order, 0, len(records))

	for _, record := range records {
		timestamp, err := ParseTimestamp(record.TimeStamp)
		if err != nil {
			return nil, exchange.WrapRemoteError(
				exchange.KindInvalidResponse,
				fmt.Sprintf("Bittrex returned an unparseable timestamp for order %s", record.OrderUUID),
				err,
			)
		}

		if timestamp > end {
			continue
		}

		if timestamp < start {
			if o.scanMode == EarlyStop {
				break
			}

			continue
		}

		order := record.Order
		order.TimeStamp = timestamp

		returnedHistory = append(returnedHistory, order)
	}

	logger.Printf(
		"Retrieved %d orders within [%d, %d] out of %d returned by Bittrex.",
		aurora.Bold(aurora.Cyan(len(returnedHistory))), start, end, len(records),
	)

	//
	// Store the answer for next time.
	//
	if o.cache != nil && query.market == "" {
		if err := o.cache.Merge(returnedHistory, start, end); err != nil {
			return nil, err
		}
	}

	return returnedHistory, nil
}
