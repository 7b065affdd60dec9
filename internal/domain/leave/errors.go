package leave

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/apperror"
)

var (
	ErrLeaveRequestNotFound    = apperror.New(apperror.KindNotFound, "leave request not found")
	ErrInsufficientLeaveDays   = apperror.New(apperror.KindInsufficientLeaveDays, "insufficient leave days")
	ErrConflictingLeaveRequest = apperror.New(apperror.KindConflictingLeaveRequest, "leave request conflicts with an existing request")
	ErrInvalidStatusTransition = apperror.New(apperror.KindInvalidStatusTransition, "invalid leave status transition")
)

// NewInsufficientLeaveDaysError reports a request longer than the remaining balance.
func NewInsufficientLeaveDaysError(required, available int) error {
	err := ErrInsufficientLeaveDays.WithDetails(map[string]string{
		"required":  strconv.Itoa(required),
		"available": strconv.Itoa(available),
	})
	err.Message = fmt.Sprintf("insufficient leave days: requested %d, available %d", required, available)
	return err
}

// NewConflictingLeaveRequestError reports an overlap with [start, end].
func NewConflictingLeaveRequestError(start, end time.Time) error {
	err := ErrConflictingLeaveRequest.WithDetails(map[string]string{
		"start_date": start.Format("2006-01-02"),
		"end_date":   end.Format("2006-01-02"),
	})
	err.Message = fmt.Sprintf("leave request from %s to %s conflicts with an existing request",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	return err
}

// NewInvalidStatusTransitionError reports a status change the lifecycle forbids.
func NewInvalidStatusTransitionError(from, to LeaveStatus) error {
	err := ErrInvalidStatusTransition.WithDetails(map[string]string{
		"current_status":   string(from),
		"requested_status": string(to),
	})
	err.Message = fmt.Sprintf("cannot change leave request status from %s to %s", from, to)
	return err
}
