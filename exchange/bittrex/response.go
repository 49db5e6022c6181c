package bittrex

import (
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

//
// envelope is the wrapper that every Bittrex API response comes in. The shape of the result
// payload depends on the method that was called.
//
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

//
// MarketSummary is a single entry of the "getmarketsummaries" result. Prices that Bittrex has no
// value for come back as null and are left invalid.
//
type MarketSummary struct {
	MarketName     string              `json:"MarketName"`
	High           decimal.NullDecimal `json:"High"`
	Low            decimal.NullDecimal `json:"Low"`
	Volume         decimal.NullDecimal `json:"Volume"`
	Last           decimal.NullDecimal `json:"Last"`
	BaseVolume     decimal.NullDecimal `json:"BaseVolume"`
	TimeStamp      string              `json:"TimeStamp"`
	Bid            decimal.NullDecimal `json:"Bid"`
	Ask            decimal.NullDecimal `json:"Ask"`
	OpenBuyOrders  int                 `json:"OpenBuyOrders"`
	OpenSellOrders int                 `json:"OpenSellOrders"`
	PrevDay        decimal.NullDecimal `json:"PrevDay"`
	Created        string              `json:"Created"`
}

//
// BalanceRecord is a single entry of the "getbalances" result.
//
type BalanceRecord struct {
	Currency      string          `json:"Currency"`
	Balance       decimal.Decimal `json:"Balance"`
	Available     decimal.Decimal `json:"Available"`
	Pending       decimal.Decimal `json:"Pending"`
	CryptoAddress string          `json:"CryptoAddress"`
}

//
// Order is a single entry of the trade history returned by QueryTradeHistory. It mirrors the
// "getorderhistory" result entries, except that TimeStamp has already been converted into seconds
// since the epoch.
//
type Order struct {
	OrderUUID         string          `json:"OrderUuid"`
	Exchange          string          `json:"Exchange"`
	TimeStamp         int64           `json:"TimeStamp"`
	OrderType         string          `json:"OrderType"`
	Limit             decimal.Decimal `json:"Limit"`
	Quantity          decimal.Decimal `json:"Quantity"`
	QuantityRemaining decimal.Decimal `json:"QuantityRemaining"`
	Commission        decimal.Decimal `json:"Commission"`
	Price             decimal.Decimal `json:"Price"`
	PricePerUnit      decimal.Decimal `json:"PricePerUnit"`
	IsConditional     bool            `json:"IsConditional"`
	Condition         string          `json:"Condition"`
	ImmediateOrCancel bool            `json:"ImmediateOrCancel"`
	Closed            string          `json:"Closed"`
}

//
// orderRecord is a "getorderhistory" result entry exactly as it comes over the wire.
//
// NOTE ~> The outer TimeStamp field shadows the embedded one, so the textual timestamp lands here
//  and every other field lands in the embedded Order.
//
type orderRecord struct {
	Order
	TimeStamp string `json:"TimeStamp"`
}
