package shutdown

import (
	"context"
	"os/signal"
	"syscall"
)

// New creates a context that is cancelled on SIGINT or SIGTERM. The second
// return value stops signal handling and releases resources.
func New() (context.Context, func()) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
