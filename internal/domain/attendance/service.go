package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn opens the employee's record for the day of the request timestamp
	ClockIn(ctx context.Context, req ClockRequest) (AttendanceResponse, error)

	// ClockOut closes the day's record and computes worked hours
	ClockOut(ctx context.Context, req ClockRequest) (AttendanceResponse, error)

	// CreateAttendance records a full day directly, bypassing the clock sequence
	CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
	ListByEmployee(ctx context.Context, employeeID string, filter DateRangeFilter) ([]AttendanceResponse, error)
	ListByDate(ctx context.Context, date string) ([]AttendanceResponse, error)

	// GetToday returns nil when the employee has no record for the current date
	GetToday(ctx context.Context, employeeID string) (*AttendanceResponse, error)

	MonthlyWorkedHours(ctx context.Context, employeeID string, year, month int) (MonthlyHoursResponse, error)
}
