package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/sge-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// Exists implements employee.EmployeeRepository.
func (r *employeeRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee existence: %w", err)
	}
	return exists, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	var (
		e         employee.Employee
		createdAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, full_name, email, created_at FROM employees WHERE id = ?`, id,
	).Scan(&e.ID, &e.FullName, &e.Email, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if e.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return employee.Employee{}, fmt.Errorf("parse created_at: %w", err)
	}
	return e, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO employees (id, full_name, email, created_at) VALUES (?, ?, ?, ?)`,
		e.ID, e.FullName, e.Email, formatTimestamp(e.CreatedAt),
	)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return e, nil
}
