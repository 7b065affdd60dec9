package leave

import (
	"context"
)

type LeaveService interface {
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (LeaveRequestResponse, error)

	GetLeaveRequest(ctx context.Context, id string) (LeaveRequestResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	ListByStatus(ctx context.Context, status string) ([]LeaveRequestResponse, error)
	ListPending(ctx context.Context) ([]LeaveRequestResponse, error)

	// HasConflict reports whether [start, end] overlaps any request of the
	// employee other than excludeID, whatever its status.
	HasConflict(ctx context.Context, req ConflictCheckRequest) (bool, error)

	RemainingDays(ctx context.Context, employeeID string, year int) (int, error)
	GetLeaveBalance(ctx context.Context, employeeID string, year int) (LeaveBalanceResponse, error)
}
