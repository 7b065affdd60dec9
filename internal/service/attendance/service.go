package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/sge-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/sge-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/keylock"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	calculator HoursCalculator
	locks      *keylock.Locker
	now        func() time.Time
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	calculator HoursCalculator,
	locks *keylock.Locker,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		EmployeeRepository:   employeeRepository,
		calculator:           calculator,
		locks:                locks,
		now:                  func() time.Time { return time.Now().UTC() },
	}
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := s.ensureEmployee(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	at := s.timestamp(req)
	date := attendance.DateOf(at)
	clockIn := attendance.TimeOfDay(at)

	unlock, err := s.locks.Lock(ctx, dayKey(req.EmployeeID, date))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	defer unlock()

	existing, err := s.findForDay(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()

	if existing == nil {
		record := attendance.Attendance{
			ID:         uuid.Must(uuid.NewV7()).String(),
			EmployeeID: req.EmployeeID,
			Date:       date,
			ClockIn:    &clockIn,
			Notes:      req.Notes,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		created, err := s.AttendanceRepository.Create(ctx, record)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
		}
		logger.FromContext(ctx).Info().
			Str("employee_id", req.EmployeeID).
			Str("date", date.Format(validator.DateLayout)).
			Msg("employee clocked in")
		return attendance.NewAttendanceResponse(created), nil
	}

	if existing.State() != attendance.StateOpen {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}

	existing.ClockIn = &clockIn
	existing.AppendNotes(req.Notes)
	existing.UpdatedAt = now

	if err := s.AttendanceRepository.Update(ctx, *existing); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return attendance.NewAttendanceResponse(*existing), nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := s.ensureEmployee(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	at := s.timestamp(req)
	date := attendance.DateOf(at)
	clockOut := attendance.TimeOfDay(at)

	unlock, err := s.locks.Lock(ctx, dayKey(req.EmployeeID, date))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	defer unlock()

	existing, err := s.findForDay(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if existing == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoClockInFound
	}
	switch existing.State() {
	case attendance.StateOpen:
		return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
	case attendance.StateClockedOut:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
	}

	existing.ClockOut = &clockOut
	existing.AppendNotes(req.Notes)
	s.calculator.Apply(existing)
	existing.UpdatedAt = s.now()

	if err := s.AttendanceRepository.Update(ctx, *existing); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("employee_id", req.EmployeeID).
		Str("date", date.Format(validator.DateLayout)).
		Str("worked_hours", existing.WorkedHours.String()).
		Str("overtime_hours", existing.OvertimeHours.String()).
		Msg("employee clocked out")

	return attendance.NewAttendanceResponse(*existing), nil
}

// CreateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CreateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := s.ensureEmployee(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record := req.ToAttendance()

	unlock, err := s.locks.Lock(ctx, dayKey(record.EmployeeID, record.Date))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	defer unlock()

	date := record.Date
	existing, err := s.AttendanceRepository.Find(ctx, attendance.AttendanceFilter{
		EmployeeID: record.EmployeeID,
		Date:       &date,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to find attendance: %w", err)
	}
	if len(existing) > 0 {
		return attendance.AttendanceResponse{}, attendance.ErrDuplicateRecord
	}

	now := s.now()
	record.ID = uuid.Must(uuid.NewV7()).String()
	record.CreatedAt = now
	record.UpdatedAt = now
	s.calculator.Apply(&record)

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return attendance.NewAttendanceResponse(created), nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return attendance.NewAttendanceResponse(record), nil
}

// ListByEmployee implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByEmployee(ctx context.Context, employeeID string, filter attendance.DateRangeFilter) ([]attendance.AttendanceResponse, error) {
	start, end, err := filter.Parse()
	if err != nil {
		return nil, err
	}

	records, err := s.AttendanceRepository.Find(ctx, attendance.AttendanceFilter{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return toResponses(records), nil
}

// ListByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByDate(ctx context.Context, date string) ([]attendance.AttendanceResponse, error) {
	d, ok := validator.IsValidDate(date)
	if !ok {
		return nil, validator.Single("date", "date must be in YYYY-MM-DD format")
	}

	records, err := s.AttendanceRepository.Find(ctx, attendance.AttendanceFilter{Date: &d})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return toResponses(records), nil
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error) {
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	record, err := s.findForDay(ctx, employeeID, attendance.DateOf(s.now()))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	resp := attendance.NewAttendanceResponse(*record)
	return &resp, nil
}

// MonthlyWorkedHours implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MonthlyWorkedHours(ctx context.Context, employeeID string, year, month int) (attendance.MonthlyHoursResponse, error) {
	var errs validator.ValidationErrors
	if year < 1 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a positive integer"})
	}
	if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if len(errs) > 0 {
		return attendance.MonthlyHoursResponse{}, errs
	}

	records, err := s.AttendanceRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return attendance.MonthlyHoursResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if len(records) == 0 {
		return attendance.MonthlyHoursResponse{}, attendance.ErrNoAttendanceRecords
	}

	total := decimal.Zero
	matched := 0
	for _, r := range records {
		if r.Date.Year() != year || int(r.Date.Month()) != month {
			continue
		}
		matched++
		if r.WorkedHours.IsPositive() {
			total = total.Add(r.WorkedHours)
		}
	}
	if matched == 0 {
		return attendance.MonthlyHoursResponse{}, attendance.ErrNoAttendanceRecords
	}

	return attendance.MonthlyHoursResponse{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		Hours:      total.InexactFloat64(),
	}, nil
}

func (s *AttendanceServiceImpl) ensureEmployee(ctx context.Context, employeeID string) error {
	exists, err := s.EmployeeRepository.Exists(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to check employee: %w", err)
	}
	if !exists {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// findForDay returns the employee's record for date, or nil when there is
// none. More than one record is a data-integrity failure.
func (s *AttendanceServiceImpl) findForDay(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	records, err := s.AttendanceRepository.Find(ctx, attendance.AttendanceFilter{
		EmployeeID: employeeID,
		Date:       &date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find attendance: %w", err)
	}

	switch len(records) {
	case 0:
		return nil, nil
	case 1:
		return &records[0], nil
	default:
		logger.FromContext(ctx).Error().
			Str("employee_id", employeeID).
			Str("date", date.Format(validator.DateLayout)).
			Int("count", len(records)).
			Msg("daily attendance uniqueness violated")
		return nil, attendance.ErrMultipleRecordsFound
	}
}

func (s *AttendanceServiceImpl) timestamp(req attendance.ClockRequest) time.Time {
	if req.At.IsZero() {
		return s.now()
	}
	return req.At
}

func dayKey(employeeID string, date time.Time) string {
	return "attendance|" + employeeID + "|" + date.Format(validator.DateLayout)
}

func toResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewAttendanceResponse(r))
	}
	return responses
}
