package services

import (
	"context"

	"github.com/SscSPs/familienkasse/internal/core/domain"
)

// AllowanceSvc runs the weekly allowance job.
type AllowanceSvc interface {
	// ProcessWeeklyAllowances deposits the configured allowance into every eligible
	// account that has not received one this week. With dryRun nothing is written.
	ProcessWeeklyAllowances(ctx context.Context, dryRun bool) domain.AllowanceResult
}
