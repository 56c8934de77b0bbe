// Package delivery defines the contract every transport server implements.
package delivery

import "context"

// Delivery is a long-running server collected into the fx "deliveries" group
// and started by the entrypoint.
type Delivery interface {
	// Serve blocks until the server stops or the context is cancelled.
	Serve(ctx context.Context) error
}
