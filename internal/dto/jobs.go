package dto

import (
	"time"

	"github.com/SscSPs/familienkasse/internal/core/domain"
)

// WeeklyAllowanceRequest is the optional body of the weekly allowance trigger.
type WeeklyAllowanceRequest struct {
	DryRun bool `json:"dryRun"`
}

// MigrationStatusResponse reports the most recent migration run, if any.
type MigrationStatusResponse struct {
	Configured bool                 `json:"configured"`
	LatestRun  *domain.MigrationLog `json:"latestRun"`
}

// HealthResponse is returned by the health probe.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	Error     string    `json:"error,omitempty"`
}

// PublicConfigResponse exposes the client-relevant server settings.
type PublicConfigResponse struct {
	RegistrationEnabled bool `json:"registrationEnabled"`
}
