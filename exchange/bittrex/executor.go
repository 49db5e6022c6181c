package bittrex

import (
	"io"
	"net/http"
	"strings"

	"github.com/lukehollenback/tally/exchange"
)

//
// Executor sends fully-built, signed requests to the Bittrex API. The URL and its signature are
// handed over together so that no header state is ever shared between requests.
//
type Executor interface {

	//
	// Send performs a GET against the provided URL with the provided signature attached and
	// returns the raw response body.
	//
	Send(requestURL string, signature string) ([]byte, error)
}

//
// HTTPExecutor implements the Executor interface on top of a regular HTTP client. The HTTP client
// (and thus its connection pool) is reused across requests.
//
type HTTPExecutor struct {
	httpClient *http.Client
}

func NewHTTPExecutor(httpClient *http.Client) *HTTPExecutor {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &HTTPExecutor{
		httpClient: httpClient,
	}
}

func (o *HTTPExecutor) Send(requestURL string, signature string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set(APISignHeader, signature)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	//
	// Make sure the status code was valid. A snippet of the body is kept for debugging.
	//
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))

		return nil, exchange.NewHTTPError(resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	return io.ReadAll(resp.Body)
}
