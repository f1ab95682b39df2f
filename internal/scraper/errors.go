package scraper

import (
	"errors"
	"fmt"
)

// ErrBodyTooLarge is wrapped by a transport FetchError when the decoded page
// exceeds the configured size limit.
var ErrBodyTooLarge = errors.New("response body exceeds size limit")

// FetchErrorKind classifies a failed fetch.
type FetchErrorKind int

const (
	// KindTransport covers connection failures, timeouts and unreadable bodies.
	KindTransport FetchErrorKind = iota
	// KindHTTPStatus is a response outside the 2xx range.
	KindHTTPStatus
)

func (k FetchErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http_status"
	default:
		return "unknown"
	}
}

// FetchError wraps errors that occur during fetching.
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("fetch error for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError wraps errors that occur while turning markup into a document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
