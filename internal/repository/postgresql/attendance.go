package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/sge-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const attendanceSelect = `
	SELECT id, employee_id, date, clock_in, clock_out, break_duration,
		   worked_hours::text, overtime_hours::text, notes, created_at, updated_at
	FROM attendances
`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, date, clock_in, clock_out, break_duration,
			worked_hours, overtime_hours, notes, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, CAST($7::text AS NUMERIC), CAST($8::text AS NUMERIC), $9, $10, $11
		)
	`

	_, err := q.Exec(ctx, query,
		newAttendance.ID,
		newAttendance.EmployeeID,
		newAttendance.Date,
		toPgTime(newAttendance.ClockIn),
		toPgTime(newAttendance.ClockOut),
		toPgInterval(newAttendance.BreakDuration),
		newAttendance.WorkedHours.String(),
		newAttendance.OvertimeHours.String(),
		newAttendance.Notes,
		newAttendance.CreatedAt,
		newAttendance.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrDuplicateRecord.Wrap(err)
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET date = $1, clock_in = $2, clock_out = $3, break_duration = $4,
			worked_hours = CAST($5::text AS NUMERIC), overtime_hours = CAST($6::text AS NUMERIC),
			notes = $7, updated_at = $8
		WHERE id = $9
	`

	tag, err := q.Exec(ctx, query,
		att.Date,
		toPgTime(att.ClockIn),
		toPgTime(att.ClockOut),
		toPgInterval(att.BreakDuration),
		att.WorkedHours.String(),
		att.OvertimeHours.String(),
		att.Notes,
		att.UpdatedAt,
		att.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.ErrDuplicateRecord.Wrap(err)
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return att, nil
}

// Find implements attendance.AttendanceRepository.
func (a *attendanceRepository) Find(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	var (
		conditions []string
		args       []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.EmployeeID != "" {
		add("employee_id = $%d", filter.EmployeeID)
	}
	if filter.Date != nil {
		add("date = $%d", *filter.Date)
	}
	if filter.StartDate != nil {
		add("date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("date <= $%d", *filter.EndDate)
	}

	query := attendanceSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date, employee_id"

	return a.query(ctx, query, args...)
}

// GetByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	return a.query(ctx, attendanceSelect+` WHERE employee_id = $1 ORDER BY date`, employeeID)
}

func (a *attendanceRepository) query(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance rows: %w", err)
	}

	return records, nil
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		att                   attendance.Attendance
		clockIn, clockOut     pgtype.Time
		breakDuration         pgtype.Interval
		workedHours, overtime string
	)

	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &clockIn, &clockOut, &breakDuration,
		&workedHours, &overtime, &att.Notes, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}

	if att.WorkedHours, err = decimal.NewFromString(workedHours); err != nil {
		return attendance.Attendance{}, fmt.Errorf("parse worked_hours: %w", err)
	}
	if att.OvertimeHours, err = decimal.NewFromString(overtime); err != nil {
		return attendance.Attendance{}, fmt.Errorf("parse overtime_hours: %w", err)
	}

	att.Date = att.Date.UTC()
	att.ClockIn = fromPgTime(clockIn)
	att.ClockOut = fromPgTime(clockOut)
	att.BreakDuration = fromPgInterval(breakDuration)

	return att, nil
}

func toPgTime(d *time.Duration) pgtype.Time {
	if d == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: d.Microseconds(), Valid: true}
}

func fromPgTime(t pgtype.Time) *time.Duration {
	if !t.Valid {
		return nil
	}
	d := time.Duration(t.Microseconds) * time.Microsecond
	return &d
}

func toPgInterval(d *time.Duration) pgtype.Interval {
	if d == nil {
		return pgtype.Interval{}
	}
	return pgtype.Interval{Microseconds: d.Microseconds(), Valid: true}
}

func fromPgInterval(i pgtype.Interval) *time.Duration {
	if !i.Valid {
		return nil
	}
	d := time.Duration(i.Microseconds)*time.Microsecond + time.Duration(i.Days)*24*time.Hour
	return &d
}
