// Package lifecycle holds process lifecycle constants shared by the deliveries.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown and startup health checks.
const DefaultTimeout = 10 * time.Second
