package exchange

import "fmt"

//
// HTTPError represents an error due to a non-200 response from an API endpoint. When dealing with
// cryptocurrency exchange APIs, such a response almost always means that something critically wrong
// has occurred.
//
type HTTPError struct {
	statusCode int
	body       string
}

func NewHTTPError(statusCode int, body string) *HTTPError {
	return &HTTPError{
		statusCode: statusCode,
		body:       body,
	}
}

func (o *HTTPError) StatusCode() int {
	return o.statusCode
}

func (o *HTTPError) Body() string {
	return o.body
}

func (o *HTTPError) Error() string {
	if o.body == "" {
		return fmt.Sprintf("server responded with a %d status code", o.statusCode)
	}

	return fmt.Sprintf("server responded with a %d status code (%s)", o.statusCode, o.body)
}
