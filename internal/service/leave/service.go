package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/sge-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/sge-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/keylock"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	ledger *BalanceLedger
	locks  *keylock.Locker
	now    func() time.Time

	// enforceTransitions restricts reviews to pending requests.
	enforceTransitions bool
}

func NewLeaveService(
	leaveRequestRepository leave.LeaveRequestRepository,
	employeeRepository employee.EmployeeRepository,
	ledger *BalanceLedger,
	locks *keylock.Locker,
	enforceTransitions bool,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		EmployeeRepository:     employeeRepository,
		ledger:                 ledger,
		locks:                  locks,
		now:                    func() time.Time { return time.Now().UTC() },
		enforceTransitions:     enforceTransitions,
	}
}

// CreateLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if err := l.ensureEmployee(ctx, req.EmployeeID); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, endDate := req.Dates()
	if err := l.validateDates(startDate, endDate); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	unlock, err := l.locks.Lock(ctx, "leave|"+req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	defer unlock()

	days := BusinessDays(startDate, endDate)

	available, err := l.ledger.Remaining(ctx, req.EmployeeID, startDate.Year())
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if days > available {
		return leave.LeaveRequestResponse{}, leave.NewInsufficientLeaveDaysError(days, available)
	}

	conflict, err := l.hasConflict(ctx, req.EmployeeID, startDate, endDate, nil)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if conflict {
		return leave.LeaveRequestResponse{}, leave.NewConflictingLeaveRequestError(startDate, endDate)
	}

	now := l.now()
	request := leave.LeaveRequest{
		ID:            uuid.Must(uuid.NewV7()).String(),
		EmployeeID:    req.EmployeeID,
		LeaveType:     leave.LeaveType(req.LeaveType),
		StartDate:     startDate,
		EndDate:       endDate,
		DaysRequested: days,
		Reason:        req.Reason,
		Status:        leave.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := l.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("employee_id", created.EmployeeID).
		Str("leave_request_id", created.ID).
		Int("days_requested", created.DaysRequested).
		Msg("leave request submitted")

	return leave.NewLeaveRequestResponse(created), nil
}

// UpdateStatus implements leave.LeaveService.
func (l *LeaveServiceImpl) UpdateStatus(ctx context.Context, req leave.UpdateStatusRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	target, _ := leave.ParseStatus(req.Status)

	request, err := l.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if l.enforceTransitions {
		if target, err = l.transition(request, target); err != nil {
			return leave.LeaveRequestResponse{}, err
		}
	}

	now := l.now()
	request.Status = target
	request.ManagerComments = req.ManagerComments
	request.ReviewedAt = &now
	request.UpdatedAt = now

	if err := l.LeaveRequestRepository.Update(ctx, request); err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("leave_request_id", request.ID).
		Str("status", string(request.Status)).
		Msg("leave request reviewed")

	return leave.NewLeaveRequestResponse(request), nil
}

// transition runs the review through the status machine. Final statuses
// never change.
func (l *LeaveServiceImpl) transition(request leave.LeaveRequest, target leave.LeaveStatus) (leave.LeaveStatus, error) {
	if request.Status.IsFinal() {
		return "", leave.NewInvalidStatusTransitionError(request.Status, target)
	}

	machine, err := leave.NewStatusMachine(request.ID, request.Status)
	if err != nil {
		return "", err
	}
	if err := machine.TransitionTo(target); err != nil {
		return "", err
	}
	return machine.Current(), nil
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return leave.NewLeaveRequestResponse(request), nil
}

// ListByEmployee implements leave.LeaveService.
func (l *LeaveServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := l.LeaveRequestRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leave.NewLeaveRequestResponses(requests), nil
}

// ListByStatus implements leave.LeaveService.
func (l *LeaveServiceImpl) ListByStatus(ctx context.Context, status string) ([]leave.LeaveRequestResponse, error) {
	s, ok := leave.ParseStatus(status)
	if !ok {
		return nil, validator.Single("status", "status must be one of pending, approved, rejected, cancelled")
	}

	requests, err := l.LeaveRequestRepository.Find(ctx, leave.LeaveRequestFilter{Status: s})
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leave.NewLeaveRequestResponses(requests), nil
}

// ListPending implements leave.LeaveService.
func (l *LeaveServiceImpl) ListPending(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	return l.ListByStatus(ctx, string(leave.StatusPending))
}

// HasConflict implements leave.LeaveService.
func (l *LeaveServiceImpl) HasConflict(ctx context.Context, req leave.ConflictCheckRequest) (bool, error) {
	if err := req.Validate(); err != nil {
		return false, err
	}
	start, end := req.Dates()
	return l.hasConflict(ctx, req.EmployeeID, start, end, req.ExcludeID)
}

// RemainingDays implements leave.LeaveService.
func (l *LeaveServiceImpl) RemainingDays(ctx context.Context, employeeID string, year int) (int, error) {
	return l.ledger.Remaining(ctx, employeeID, year)
}

// GetLeaveBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveBalance(ctx context.Context, employeeID string, year int) (leave.LeaveBalanceResponse, error) {
	if year == 0 {
		year = l.now().Year()
	}
	if year < 1 {
		return leave.LeaveBalanceResponse{}, validator.Single("year", "year must be a positive integer")
	}
	if err := l.ensureEmployee(ctx, employeeID); err != nil {
		return leave.LeaveBalanceResponse{}, err
	}

	left, err := l.ledger.Remaining(ctx, employeeID, year)
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}

	return leave.LeaveBalanceResponse{
		EmployeeID:  employeeID,
		Year:        year,
		Entitlement: l.ledger.Entitlement,
		Taken:       l.ledger.Entitlement - left,
		Remaining:   left,
	}, nil
}

// hasConflict checks every request of the employee, whatever its status.
func (l *LeaveServiceImpl) hasConflict(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error) {
	requests, err := l.LeaveRequestRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return false, fmt.Errorf("failed to get leave requests: %w", err)
	}

	for _, r := range requests {
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if r.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (l *LeaveServiceImpl) validateDates(start, end time.Time) error {
	var errs validator.ValidationErrors

	if end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date cannot be before start_date",
		})
	}

	today := dateOnly(l.now())
	if start.Before(today) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date cannot be in the past",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (l *LeaveServiceImpl) ensureEmployee(ctx context.Context, employeeID string) error {
	exists, err := l.EmployeeRepository.Exists(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to check employee: %w", err)
	}
	if !exists {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
