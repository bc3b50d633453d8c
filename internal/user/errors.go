package user

import (
	"errors"
	"fmt"
)

// FetchErrorKind classifies why a load produced no event.
type FetchErrorKind int

const (
	// KindNetwork covers transport failures, including a cancelled context.
	KindNetwork FetchErrorKind = iota + 1
	// KindStatus is a response outside the 2xx range.
	KindStatus
	// KindDecode is a body that is not JSON or has no results list.
	KindDecode
)

func (k FetchErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

var (
	errMissingResults = errors.New(`body has no "results" list`)
	errNoGetter       = errors.New("store has no getter")
)

// FetchError describes a failed load. It is returned for logging only: a
// failed load leaves the store exactly as it was.
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int
	Body       string // excerpt of the response body for KindStatus
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Body != "" {
			return fmt.Sprintf("GET %s: %d %s", e.URL, e.StatusCode, e.Body)
		}
		return fmt.Sprintf("GET %s: %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("GET %s: %s: %v", e.URL, e.Kind, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// asFetchError classifies an error returned by a Getter. Getters may already
// return a *FetchError; anything else is a transport failure.
func asFetchError(url string, err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		if fe.URL == "" {
			fe.URL = url
		}
		return fe
	}
	return &FetchError{Kind: KindNetwork, URL: url, Err: err}
}
