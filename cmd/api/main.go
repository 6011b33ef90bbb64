package main

import (
	"fmt"
	"net/http"

	"github.com/ujoors/payroll-backend-go/internal/config"
	appHTTP "github.com/ujoors/payroll-backend-go/internal/handler/http"
	"github.com/ujoors/payroll-backend-go/internal/pkg/database"
	"github.com/ujoors/payroll-backend-go/internal/pkg/jwt"
	"github.com/ujoors/payroll-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/ujoors/payroll-backend-go/internal/service/auth"
	loanService "github.com/ujoors/payroll-backend-go/internal/service/loan"
	payrollService "github.com/ujoors/payroll-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	periodRepo := postgresql.NewPeriodRepository(db)
	structureRepo := postgresql.NewStructureRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	loanRepo := postgresql.NewLoanRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authService := serviceAuth.NewAuthService(userRepo, jwtService)
	payrollSvc := payrollService.NewPayrollService(
		db,
		cfg.Payroll,
		periodRepo,
		structureRepo,
		payslipRepo,
		attendanceRepo,
		employeeRepo,
		loanRepo,
	)
	loanSvc := loanService.NewLoanService(loanRepo, employeeRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authService)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	loanHandler := appHTTP.NewLoanHandler(loanSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:         cfg.App.Env,
			FrontendURL: cfg.App.FrontendURL,
		},
		jwtService,
		authHandler,
		payrollHandler,
		loanHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
