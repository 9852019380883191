package services

import "context"

// HealthSvc reports whether the service's dependencies are reachable.
type HealthSvc interface {
	CheckDatabase(ctx context.Context) error
}
