package leave

import "time"

type LeaveType string

const (
	LeaveTypeAnnual      LeaveType = "annual"
	LeaveTypeSick        LeaveType = "sick"
	LeaveTypeUnpaid      LeaveType = "unpaid"
	LeaveTypeMaternity   LeaveType = "maternity"
	LeaveTypePaternity   LeaveType = "paternity"
	LeaveTypeBereavement LeaveType = "bereavement"
	LeaveTypeOther       LeaveType = "other"
)

var leaveTypes = []string{
	string(LeaveTypeAnnual),
	string(LeaveTypeSick),
	string(LeaveTypeUnpaid),
	string(LeaveTypeMaternity),
	string(LeaveTypePaternity),
	string(LeaveTypeBereavement),
	string(LeaveTypeOther),
}

// LeaveRequest entity. StartDate and EndDate are UTC midnight dates and
// the range is inclusive.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  LeaveType

	StartDate time.Time
	EndDate   time.Time

	// Business days in the range, computed on creation.
	DaysRequested int

	Reason string

	Status          LeaveStatus
	ManagerComments *string
	ReviewedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports whether the request shares at least one calendar day with
// [start, end]. Both boundaries are closed.
func (r LeaveRequest) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}
