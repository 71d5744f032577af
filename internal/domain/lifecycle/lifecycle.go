// Package lifecycle holds shared timing constants for start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds every fx OnStart/OnStop hook that talks to the network.
const DefaultTimeout = 10 * time.Second
