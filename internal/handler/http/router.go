package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/sge-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	Version        string

	// Quiet disables the request log, used by tests.
	Quiet bool
}

// NewRouter mounts the API. A nil JWTService leaves every route open.
func NewRouter(opts RouterOptions, JWTService jwt.Service, attendanceHandler AttendanceHandler, leaveHandler LeaveHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)

	if !opts.Quiet {
		logFormat := httplog.SchemaECS.Concise(false)
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			ReplaceAttr: logFormat.ReplaceAttr,
		})).With(
			slog.String("app", "sge-backend"),
			slog.String("version", opts.Version),
			slog.String("env", opts.Env),
		)

		r.Use(httplog.RequestLogger(logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(middleware.ContextLogger)
	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	authEnabled := JWTService != nil

	// manager wraps routes that need a reviewer role when auth is on.
	manager := func(r chi.Router) chi.Router {
		if authEnabled {
			return r.With(middleware.RequireManager)
		}
		return r
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if authEnabled {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			}

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)

				manager(r).Post("/", attendanceHandler.Create)
				manager(r).Get("/", attendanceHandler.ListByDate)
				r.Get("/{id}", attendanceHandler.Get)
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", leaveHandler.CreateRequest)
				r.Get("/{id}", leaveHandler.GetRequest)

				manager(r).Get("/", leaveHandler.ListRequests)
				manager(r).Get("/pending", leaveHandler.ListPending)
				manager(r).Put("/{id}/status", leaveHandler.UpdateStatus)
			})

			r.Route("/employees/{employeeID}", func(r chi.Router) {
				if authEnabled {
					r.Use(middleware.RequireEmployeeScope("employeeID"))
				}

				r.Get("/attendance", attendanceHandler.ListByEmployee)
				r.Get("/attendance/today", attendanceHandler.GetToday)
				r.Get("/attendance/monthly-hours", attendanceHandler.MonthlyHours)

				r.Get("/leave-requests", leaveHandler.ListEmployeeRequests)
				r.Get("/leave-balance", leaveHandler.GetBalance)
				r.Post("/leave-conflicts", leaveHandler.CheckConflict)
			})
		})
	})

	return r
}
