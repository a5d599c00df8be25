// Package lifecycle holds shared start/stop conventions for long-lived components.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup and shutdown of servers and clients.
const DefaultTimeout = 10 * time.Second
