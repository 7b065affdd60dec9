package main

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/sge-backend-go/internal/config"
	"github.com/cmlabs-hris/sge-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/sge-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/sge-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/sge-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/sge-backend-go/internal/repository/sqlite"
	"github.com/rs/zerolog/log"
)

// store bundles the repositories of the configured backend.
type store struct {
	Employees  employee.EmployeeRepository
	Attendance attendance.AttendanceRepository
	Leave      leave.LeaveRequestRepository
	Close      func()
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		log.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.Name).Msg("connected to postgres")

		return &store{
			Employees:  postgresql.NewEmployeeRepository(db),
			Attendance: postgresql.NewAttendanceRepository(db),
			Leave:      postgresql.NewLeaveRequestRepository(db),
			Close:      db.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Database.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		log.Info().Str("path", cfg.Database.SQLitePath).Msg("opened sqlite store")

		return &store{
			Employees:  sqlite.NewEmployeeRepository(db),
			Attendance: sqlite.NewAttendanceRepository(db),
			Leave:      sqlite.NewLeaveRequestRepository(db),
			Close:      func() { db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
