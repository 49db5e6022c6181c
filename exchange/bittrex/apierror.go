package bittrex

import "github.com/lukehollenback/tally/exchange"

const (
	msgInvalidAPIKey    = "APIKEY_INVALID"
	msgInvalidSignature = "INVALID_SIGNATURE"
)

//
// classify decides what kind of remote error an unsuccessful envelope's message represents.
//
func classify(message string) exchange.ErrorKind {
	switch message {
	case msgInvalidAPIKey:
		return exchange.KindInvalidAPIKey
	case msgInvalidSignature:
		return exchange.KindInvalidSignature
	default:
		return exchange.KindOther
	}
}
