package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/ujoors/payroll-backend-go/internal/domain/user"
	"github.com/ujoors/payroll-backend-go/internal/handler/http/middleware"
	"github.com/ujoors/payroll-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	Env         string
	FrontendURL string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	payrollHandler PayrollHandler,
	loanHandler LoanHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ujoors-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {

				r.Route("/periods", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/", payrollHandler.ListPeriods)
					r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/{id}", payrollHandler.GetPeriod)
					r.With(middleware.RequirePermission(user.PermissionPayrollRun)).Post("/", payrollHandler.CreatePeriod)
					r.With(middleware.RequirePermission(user.PermissionPayrollRun)).Post("/{id}/run", payrollHandler.RunPeriod)
					r.With(middleware.RequirePermission(user.PermissionPayrollApprove)).Post("/{id}/approve", payrollHandler.ApprovePeriod)
					r.With(middleware.RequirePermission(user.PermissionPayrollApprove)).Post("/{id}/pay", payrollHandler.MarkPeriodPaid)
					r.With(middleware.RequirePermission(user.PermissionPayrollApprove)).Post("/{id}/cancel", payrollHandler.CancelPeriod)
				})

				r.Route("/structures", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionStructureView)).Get("/", payrollHandler.ListStructures)
					r.With(middleware.RequirePermission(user.PermissionStructureView)).Get("/{id}", payrollHandler.GetStructure)
					r.With(middleware.RequirePermission(user.PermissionStructureManage)).Post("/", payrollHandler.CreateStructure)
					r.With(middleware.RequirePermission(user.PermissionStructureManage)).Delete("/{id}", payrollHandler.DeleteStructure)
				})

				r.Route("/payslips", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionPayslipViewAll)).Get("/", payrollHandler.ListPayslips)
					r.With(middleware.RequirePermission(user.PermissionPayslipViewOwn)).Get("/{id}", payrollHandler.GetPayslip)
					r.With(middleware.RequirePermission(user.PermissionPayslipViewOwn)).Get("/{id}/download", payrollHandler.DownloadPayslip)
					r.With(middleware.RequirePermission(user.PermissionPayslipViewAll)).Put("/{id}/status", payrollHandler.UpdatePayslipStatus)
				})
			})

			r.Route("/loans", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLoanViewAll)).Get("/{id}", loanHandler.Get)
				r.With(middleware.RequirePermission(user.PermissionLoanApprove)).Post("/{id}/approve", loanHandler.Approve)
				r.With(middleware.RequirePermission(user.PermissionLoanApprove)).Post("/{id}/reject", loanHandler.Reject)
				r.With(middleware.RequirePermission(user.PermissionLoanApprove)).Post("/{id}/activate", loanHandler.Activate)
				r.With(middleware.RequirePermission(user.PermissionLoanApprove)).Post("/{id}/cancel", loanHandler.Cancel)
			})

			r.Route("/employees/{employeeID}/loans", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLoanViewAll)).Get("/", loanHandler.ListByEmployee)
				r.With(middleware.RequirePermission(user.PermissionLoanApply)).Post("/", loanHandler.Apply)
			})
		})
	})
	return r
}
