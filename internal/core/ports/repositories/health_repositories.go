package repositories

import "context"

// HealthChecker verifies that the primary store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
