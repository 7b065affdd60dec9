package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// ClockRequest is shared by clock-in and clock-out. Timestamp is RFC3339 and
// defaults to the current time when omitted. Validate converts it to UTC, so
// records are filed under the UTC calendar date.
type ClockRequest struct {
	EmployeeID string    `json:"employee_id"`
	Timestamp  string    `json:"timestamp,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	At         time.Time `json:"-"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Timestamp != "" {
		at, ok := validator.IsValidDateTime(r.Timestamp)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be an RFC3339 date-time",
			})
		} else {
			r.At = at.UTC()
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MaxBreakMinutes is one full day.
const MaxBreakMinutes = 24 * 60

type CreateAttendanceRequest struct {
	EmployeeID   string  `json:"employee_id"`
	Date         string  `json:"date"`
	ClockIn      *string `json:"clock_in,omitempty"`
	ClockOut     *string `json:"clock_out,omitempty"`
	BreakMinutes *int    `json:"break_minutes,omitempty"`
	Notes        string  `json:"notes,omitempty"`

	date          time.Time
	clockIn       *time.Duration
	clockOut      *time.Duration
	breakDuration *time.Duration
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if d, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else {
		r.date = d
	}

	r.clockIn = parseClock(r.ClockIn, "clock_in", &errs)
	r.clockOut = parseClock(r.ClockOut, "clock_out", &errs)

	if r.BreakMinutes != nil {
		if *r.BreakMinutes < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "break_minutes",
				Message: "break_minutes must not be negative",
			})
		} else if *r.BreakMinutes > MaxBreakMinutes {
			errs = append(errs, validator.ValidationError{
				Field:   "break_minutes",
				Message: fmt.Sprintf("break_minutes must not exceed %d", MaxBreakMinutes),
			})
		} else {
			d := time.Duration(*r.BreakMinutes) * time.Minute
			r.breakDuration = &d
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToAttendance builds the record described by a validated request.
func (r *CreateAttendanceRequest) ToAttendance() Attendance {
	return Attendance{
		EmployeeID:    r.EmployeeID,
		Date:          r.date,
		ClockIn:       r.clockIn,
		ClockOut:      r.clockOut,
		BreakDuration: r.breakDuration,
		Notes:         r.Notes,
	}
}

func parseClock(value *string, field string, errs *validator.ValidationErrors) *time.Duration {
	if value == nil {
		return nil
	}
	d, ok := validator.IsValidClockTime(*value)
	if !ok {
		*errs = append(*errs, validator.ValidationError{
			Field:   field,
			Message: field + " must be in HH:MM or HH:MM:SS format",
		})
		return nil
	}
	return &d
}

// DateRangeFilter is an optional inclusive date range in YYYY-MM-DD form.
type DateRangeFilter struct {
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

// Parse validates the bounds and returns them as dates.
func (f DateRangeFilter) Parse() (start, end *time.Time, err error) {
	var errs validator.ValidationErrors

	if f.StartDate != nil {
		if d, ok := validator.IsValidDate(*f.StartDate); ok {
			start = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil {
		if d, ok := validator.IsValidDate(*f.EndDate); ok {
			end = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if start != nil && end != nil && end.Before(*start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date cannot be before start_date",
		})
	}

	if len(errs) > 0 {
		return nil, nil, errs
	}
	return start, end, nil
}

type AttendanceResponse struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	Date          string    `json:"date"`
	ClockIn       *string   `json:"clock_in,omitempty"`
	ClockOut      *string   `json:"clock_out,omitempty"`
	BreakMinutes  *float64  `json:"break_minutes,omitempty"`
	WorkedHours   float64   `json:"worked_hours"`
	OvertimeHours float64   `json:"overtime_hours"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewAttendanceResponse maps a record to its API view.
func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		Date:          a.Date.Format(validator.DateLayout),
		WorkedHours:   a.WorkedHours.InexactFloat64(),
		OvertimeHours: a.OvertimeHours.InexactFloat64(),
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if a.ClockIn != nil {
		s := validator.FormatClockTime(*a.ClockIn)
		resp.ClockIn = &s
	}
	if a.ClockOut != nil {
		s := validator.FormatClockTime(*a.ClockOut)
		resp.ClockOut = &s
	}
	if a.BreakDuration != nil {
		m := a.BreakDuration.Minutes()
		resp.BreakMinutes = &m
	}
	return resp
}

type MonthlyHoursResponse struct {
	EmployeeID string  `json:"employee_id"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	Hours      float64 `json:"hours"`
}
