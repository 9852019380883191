package services

import (
	"context"
	"errors"
	"fmt"

	portsrepo "github.com/SscSPs/familienkasse/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/familienkasse/internal/core/ports/services"
)

type healthService struct {
	checker portsrepo.HealthChecker
}

// NewHealthService creates the dependency probe used by the health endpoint.
func NewHealthService(checker portsrepo.HealthChecker) portssvc.HealthSvc {
	return &healthService{checker: checker}
}

func (s *healthService) CheckDatabase(ctx context.Context) error {
	if s.checker == nil {
		return errors.New("no database configured")
	}
	if err := s.checker.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
