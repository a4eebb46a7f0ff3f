// Package delivery defines the contract every transport entry point
// (HTTP today) must satisfy so the process entry can run them uniformly.
package delivery

import "context"

// Delivery is a long-running transport server. Serve blocks until the
// server stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
