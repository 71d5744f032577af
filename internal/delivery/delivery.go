// Package delivery holds the transports that expose the services to the outside world.
package delivery

import "context"

// Delivery is a long-running server started once the fx graph is ready.
type Delivery interface {
	Serve(ctx context.Context) error
}
