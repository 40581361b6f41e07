package s3client

import "fmt"

// TransportError means the endpoint could not be reached at all.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError is a non-2xx HTTP response. Body holds the response body
// for diagnostics (truncated).
type ProtocolError struct {
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("HTTP %s for %s\n%s", e.Status, e.URL, e.Body)
}

// ParseError means the response body was not the XML shape we expect.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed listing response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
