// Package lifecycle holds shared constants for process startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds lifecycle operations such as the initial database
// ping and graceful HTTP shutdown.
const DefaultTimeout = 30 * time.Second
