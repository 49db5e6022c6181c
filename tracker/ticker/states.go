package ticker

type state int

const (
	disconnected state = iota // The ticker service has not yet attempted to establish a connection to the Coinbase Pro websocket API.
	connecting                // The ticker service is attempting to establish a connection to the Coinbase Pro websocket API.
	connected                 // The ticker service has connected to the Coinbase Pro websocket API.
	subscribed                // The ticker service has successfully subscribed to the ticker channel and is recording prices.
)

func (o state) String() string {
	return [...]string{"disconnected", "connecting", "connected", "subscribed"}[o]
}
