package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/sge-backend-go/internal/domain/leave"
)

const leaveRequestColumns = `id, employee_id, leave_type, start_date, end_date, days_requested,
	reason, status, manager_comments, reviewed_at, created_at, updated_at`

type leaveRequestRepository struct {
	db *sql.DB
}

func NewLeaveRequestRepository(db *sql.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO leave_requests (`+leaveRequestColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.EmployeeID, string(req.LeaveType),
		req.StartDate.Format(dateLayout), req.EndDate.Format(dateLayout), req.DaysRequested,
		req.Reason, string(req.Status), nullString(req.ManagerComments), reviewedAtValue(req),
		formatTimestamp(req.CreatedAt), formatTimestamp(req.UpdatedAt),
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return req, nil
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Update(ctx context.Context, req leave.LeaveRequest) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE leave_requests
		SET leave_type = ?, start_date = ?, end_date = ?, days_requested = ?, reason = ?,
			status = ?, manager_comments = ?, reviewed_at = ?, updated_at = ?
		WHERE id = ?`,
		string(req.LeaveType), req.StartDate.Format(dateLayout), req.EndDate.Format(dateLayout),
		req.DaysRequested, req.Reason, string(req.Status),
		nullString(req.ManagerComments), reviewedAtValue(req), formatTimestamp(req.UpdatedAt),
		req.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if n == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests WHERE id = ?`, id)
	req, err := scanLeaveRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

// Find implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Find(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.EmployeeID != "" {
		where = append(where, "employee_id = ?")
		args = append(args, filter.EmployeeID)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.StartYear != 0 {
		where = append(where, "substr(start_date, 1, 4) = ?")
		args = append(args, fmt.Sprintf("%04d", filter.StartYear))
	}

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY start_date, created_at"

	return r.query(ctx, query, args...)
}

// GetByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return r.query(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests WHERE employee_id = ? ORDER BY start_date, created_at`, employeeID)
}

func (r *leaveRequestRepository) query(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func scanLeaveRequest(s scanner) (leave.LeaveRequest, error) {
	var (
		req                         leave.LeaveRequest
		leaveType, status           string
		startDate, endDate          string
		createdAt, updatedAt        string
		managerComments, reviewedAt sql.NullString
	)
	err := s.Scan(
		&req.ID, &req.EmployeeID, &leaveType, &startDate, &endDate, &req.DaysRequested,
		&req.Reason, &status, &managerComments, &reviewedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	req.LeaveType = leave.LeaveType(leaveType)
	req.Status = leave.LeaveStatus(status)

	if req.StartDate, err = parseDate(startDate); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("parse start_date: %w", err)
	}
	if req.EndDate, err = parseDate(endDate); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("parse end_date: %w", err)
	}
	if req.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("parse created_at: %w", err)
	}
	if req.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("parse updated_at: %w", err)
	}
	if managerComments.Valid {
		req.ManagerComments = &managerComments.String
	}
	if reviewedAt.Valid {
		t, err := parseTimestamp(reviewedAt.String)
		if err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("parse reviewed_at: %w", err)
		}
		req.ReviewedAt = &t
	}
	return req, nil
}

func nullString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func reviewedAtValue(req leave.LeaveRequest) interface{} {
	if req.ReviewedAt == nil {
		return nil
	}
	return formatTimestamp(*req.ReviewedAt)
}
