// Package delivery defines the contract every transport implements so the
// bootstrap can start servers uniformly.
package delivery

import "context"

// Delivery is a long-running server owned by the fx lifecycle.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
