package tracker

//
// Service is a long-running background component of the tracker (the live price feed, the trade
// writer) that main starts before querying Bittrex and stops on the way out.
//
type Service interface {

	//
	// Start spins the service up in the background. The returned channel yields true once the service
	// is ready. A started service must be stopped before it is started again.
	//
	Start() (<-chan bool, error)

	//
	// Stop asks a started service to shut down. The returned channel yields true once it has released
	// everything it holds.
	//
	Stop() (<-chan bool, error)
}
