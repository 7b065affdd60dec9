package attendance

import (
	"context"
	"time"
)

// AttendanceFilter narrows Find. Zero fields are ignored; date bounds are
// inclusive.
type AttendanceFilter struct {
	EmployeeID string
	Date       *time.Time
	StartDate  *time.Time
	EndDate    *time.Time
}

// AttendanceRepository defines data access methods for attendance records.
// Create and Update return ErrDuplicateRecord when the (employee, date)
// uniqueness constraint is violated.
type AttendanceRepository interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)
	Update(ctx context.Context, attendance Attendance) error

	// GetByID returns ErrAttendanceNotFound when no record matches.
	GetByID(ctx context.Context, id string) (Attendance, error)

	// Find returns the records matching filter ordered by date.
	Find(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)

	GetByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
}
