package onboarding

import (
	"context"

	"github.com/nkwe-logistics/fleetflow-api/internal/domain/repository"
)

// ApprovalTxRunner runs application approval inside one transaction: the
// company insert and the conditional pending-to-approved flip commit or roll
// back together.
type ApprovalTxRunner interface {
	RunApproval(ctx context.Context, fn func(
		apps repository.ApplicationRepository,
		companies repository.CompanyRepository,
	) error) error
}
