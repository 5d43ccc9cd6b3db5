// Package idgen issues external-facing correlation ids for requests
// entering pkg/marketdata. matchcore.OrderId stays a plain uint64 per the
// core's spec; the UUID minted here only labels a request/response
// envelope at the edge and is never passed into the book itself.
package idgen

import "github.com/google/uuid"

// NewRequestId returns a fresh random correlation id for one inbound API
// call.
func NewRequestId() string {
	return uuid.NewString()
}
