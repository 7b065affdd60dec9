package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	appHTTP "github.com/cmlabs-hris/sge-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/keylock"
	attendanceService "github.com/cmlabs-hris/sge-backend-go/internal/service/attendance"
	leaveService "github.com/cmlabs-hris/sge-backend-go/internal/service/leave"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		var JWTService jwt.Service
		if cfg.JWT.Secret != "" {
			JWTService, err = jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
			if err != nil {
				return err
			}
		} else {
			log.Warn().Msg("JWT_SECRET_KEY is empty, API routes are not authenticated")
		}

		locks := keylock.New()
		calculator := attendanceService.NewHoursCalculator(cfg.Policy.NormalHoursPerDay)
		ledger := leaveService.NewBalanceLedger(st.Leave, cfg.Policy.AnnualLeaveDays)

		attendanceSvc := attendanceService.NewAttendanceService(st.Attendance, st.Employees, calculator, locks)
		leaveSvc := leaveService.NewLeaveService(st.Leave, st.Employees, ledger, locks, cfg.Policy.EnforceStatusTransitions)

		router := appHTTP.NewRouter(
			appHTTP.RouterOptions{
				AllowedOrigins: cfg.Origins(),
				Env:            cfg.App.Env,
				Version:        Version,
			},
			JWTService,
			appHTTP.NewAttendanceHandler(attendanceSvc),
			appHTTP.NewLeaveHandler(leaveSvc),
		)

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.App.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			log.Info().Str("addr", server.Addr).Str("env", cfg.App.Env).Msg("server listening")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			log.Info().Msg("shutting down server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}
