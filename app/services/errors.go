package services

import "errors"

var (
	// ErrProductNotFound is set on a ProductResult when the catalog answers
	// 2xx with an empty or null body.
	ErrProductNotFound = errors.New("services: product not found")

	// ErrUpstreamStatus wraps a non-2xx answer from the catalog.
	ErrUpstreamStatus = errors.New("services: catalog returned non-2xx status")

	// ErrDownstreamStatus wraps a non-2xx answer from the order-intake service.
	ErrDownstreamStatus = errors.New("services: order intake returned non-2xx status")
)

// DownstreamError marks a failure talking to the order-intake service,
// whether the request never completed or the answer was not 2xx.
type DownstreamError struct {
	Err error
}

func (e *DownstreamError) Error() string { return e.Err.Error() }

func (e *DownstreamError) Unwrap() error { return e.Err }

// IsDownstream reports whether err came from the order-intake call.
func IsDownstream(err error) bool {
	var de *DownstreamError
	return errors.As(err, &de)
}
