// Package lifecycle holds shared shutdown settings.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of delivery servers.
const DefaultTimeout = 10 * time.Second
