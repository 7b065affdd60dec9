package leave

import "context"

// LeaveRequestFilter narrows Find. Zero fields are ignored.
type LeaveRequestFilter struct {
	EmployeeID string
	Status     LeaveStatus

	// StartYear matches requests whose start date falls in the given year.
	StartYear int
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	Update(ctx context.Context, request LeaveRequest) error

	// GetByID returns ErrLeaveRequestNotFound when no request matches.
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// Find returns matching requests ordered by start date.
	Find(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)

	GetByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
}
