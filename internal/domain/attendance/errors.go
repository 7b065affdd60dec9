package attendance

import "github.com/cmlabs-hris/sge-backend-go/internal/pkg/apperror"

// Attendance domain errors
var (
	// Clock sequence errors
	ErrAlreadyClockedIn  = apperror.New(apperror.KindAlreadyClockedIn, "employee has already clocked in today")
	ErrAlreadyClockedOut = apperror.New(apperror.KindAlreadyClockedOut, "employee has already clocked out today")
	ErrNotClockedIn      = apperror.New(apperror.KindNotClockedIn, "employee has not clocked in today")
	ErrNoClockInFound    = apperror.New(apperror.KindNoClockInFound, "no clock-in found for this date")

	// Record errors
	ErrAttendanceNotFound   = apperror.New(apperror.KindNotFound, "attendance record not found")
	ErrNoAttendanceRecords  = apperror.New(apperror.KindNotFound, "no attendance records found")
	ErrDuplicateRecord      = apperror.New(apperror.KindDuplicateRecord, "attendance record already exists for this date")
	ErrMultipleRecordsFound = apperror.New(apperror.KindMultipleRecordsFound, "multiple attendance records found for one employee and date")
)
