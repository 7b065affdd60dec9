package leave

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/sge-backend-go/internal/domain/leave"
)

// BalanceLedger derives the remaining annual entitlement from approved
// requests.
type BalanceLedger struct {
	leave.LeaveRequestRepository
	Entitlement int
}

func NewBalanceLedger(repo leave.LeaveRequestRepository, entitlement int) *BalanceLedger {
	return &BalanceLedger{LeaveRequestRepository: repo, Entitlement: entitlement}
}

// Taken sums the days of approved requests starting in year.
func (b *BalanceLedger) Taken(ctx context.Context, employeeID string, year int) (int, error) {
	approved, err := b.LeaveRequestRepository.Find(ctx, leave.LeaveRequestFilter{
		EmployeeID: employeeID,
		Status:     leave.StatusApproved,
		StartYear:  year,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to find approved leave: %w", err)
	}

	taken := 0
	for _, r := range approved {
		taken += r.DaysRequested
	}
	return taken, nil
}

// Remaining never goes below zero.
func (b *BalanceLedger) Remaining(ctx context.Context, employeeID string, year int) (int, error) {
	taken, err := b.Taken(ctx, employeeID, year)
	if err != nil {
		return 0, err
	}
	return remaining(b.Entitlement, taken), nil
}

func remaining(entitlement, taken int) int {
	if r := entitlement - taken; r > 0 {
		return r
	}
	return 0
}
