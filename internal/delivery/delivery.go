// Package delivery defines the contract shared by all transport servers.
package delivery

import "context"

// Delivery is a long-running transport (HTTP API, Pub/Sub worker) managed by
// the application lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
