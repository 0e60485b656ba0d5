package wildberries

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches a lookup whose response listed no products.
	ErrNotFound = errors.New("product not found")
	// ErrTransport matches network, status and decoding failures of a lookup.
	ErrTransport = errors.New("catalog transport failure")
	// ErrUnknownCity is returned when a city has no destination code.
	ErrUnknownCity = errors.New("unknown destination city")
)

// NotFoundError carries the id that was requested.
type NotFoundError struct {
	ProductID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// TransportError wraps the underlying failure of a lookup request.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error        { return e.Err }
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// StatusError is a non-2xx answer from the catalog.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog response status %d: %s", e.StatusCode, e.Body)
}
