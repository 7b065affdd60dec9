package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/sge-backend-go/internal/domain/attendance"
)

const attendanceColumns = `id, employee_id, date, clock_in, clock_out, break_duration,
	worked_hours, overtime_hours, notes, created_at, updated_at`

type attendanceRepository struct {
	db *sql.DB
}

func NewAttendanceRepository(db *sql.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attendances (`+attendanceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.EmployeeID, a.Date.Format(dateLayout),
		durationValue(a.ClockIn), durationValue(a.ClockOut), durationValue(a.BreakDuration),
		a.WorkedHours, a.OvertimeHours, a.Notes,
		formatTimestamp(a.CreatedAt), formatTimestamp(a.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrDuplicateRecord.Wrap(err)
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return a, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE attendances
		SET date = ?, clock_in = ?, clock_out = ?, break_duration = ?,
			worked_hours = ?, overtime_hours = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		a.Date.Format(dateLayout),
		durationValue(a.ClockIn), durationValue(a.ClockOut), durationValue(a.BreakDuration),
		a.WorkedHours, a.OvertimeHours, a.Notes, formatTimestamp(a.UpdatedAt),
		a.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.ErrDuplicateRecord.Wrap(err)
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if n == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+attendanceColumns+` FROM attendances WHERE id = ?`, id)
	a, err := scanAttendance(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a, nil
}

// Find implements attendance.AttendanceRepository.
func (r *attendanceRepository) Find(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.EmployeeID != "" {
		where = append(where, "employee_id = ?")
		args = append(args, filter.EmployeeID)
	}
	if filter.Date != nil {
		where = append(where, "date = ?")
		args = append(args, filter.Date.Format(dateLayout))
	}
	if filter.StartDate != nil {
		where = append(where, "date >= ?")
		args = append(args, filter.StartDate.Format(dateLayout))
	}
	if filter.EndDate != nil {
		where = append(where, "date <= ?")
		args = append(args, filter.EndDate.Format(dateLayout))
	}

	query := `SELECT ` + attendanceColumns + ` FROM attendances`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date, employee_id"

	return r.query(ctx, query, args...)
}

// GetByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	return r.query(ctx, `SELECT `+attendanceColumns+` FROM attendances WHERE employee_id = ? ORDER BY date`, employeeID)
}

func (r *attendanceRepository) query(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAttendance(s scanner) (attendance.Attendance, error) {
	var (
		a                                attendance.Attendance
		date, createdAt, updatedAt       string
		clockIn, clockOut, breakDuration sql.NullInt64
	)
	err := s.Scan(
		&a.ID, &a.EmployeeID, &date, &clockIn, &clockOut, &breakDuration,
		&a.WorkedHours, &a.OvertimeHours, &a.Notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}

	if a.Date, err = parseDate(date); err != nil {
		return attendance.Attendance{}, fmt.Errorf("parse date: %w", err)
	}
	if a.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return attendance.Attendance{}, fmt.Errorf("parse created_at: %w", err)
	}
	if a.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return attendance.Attendance{}, fmt.Errorf("parse updated_at: %w", err)
	}
	a.ClockIn = durationPtr(clockIn)
	a.ClockOut = durationPtr(clockOut)
	a.BreakDuration = durationPtr(breakDuration)
	return a, nil
}
