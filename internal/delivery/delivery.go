// Package delivery defines the contract shared by every serving surface
// (HTTP API, websocket broker, pubsub worker).
package delivery

import "context"

// Delivery is a long-running server started by the application entrypoint.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
