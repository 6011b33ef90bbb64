package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// PayrollConfig holds the statutory and policy defaults the settlement
// engine is parameterized with. All of these are jurisdiction or company
// policy and must stay configurable rather than compiled in.
type PayrollConfig struct {
	GOSIEmployeeRate   decimal.Decimal
	GOSIEmployerRate   decimal.Decimal
	StandardDailyHours decimal.Decimal
	OvertimeMultiplier decimal.Decimal
	ClampExcessAbsence bool
	RunParallelism     int
	PayslipStoragePath string
}

func Load() (*Config, error) {
	// Missing .env is fine in production where env vars are injected.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "ujoors-payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Payroll configuration
	gosiEmployee, err := getEnvDecimal("GOSI_EMPLOYEE_RATE", "0.0975")
	if err != nil {
		return nil, fmt.Errorf("invalid GOSI_EMPLOYEE_RATE: %w", err)
	}
	gosiEmployer, err := getEnvDecimal("GOSI_EMPLOYER_RATE", "0.1175")
	if err != nil {
		return nil, fmt.Errorf("invalid GOSI_EMPLOYER_RATE: %w", err)
	}
	dailyHours, err := getEnvDecimal("PAYROLL_STANDARD_DAILY_HOURS", "8")
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_STANDARD_DAILY_HOURS: %w", err)
	}
	overtimeMultiplier, err := getEnvDecimal("PAYROLL_OVERTIME_MULTIPLIER", "1.5")
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_OVERTIME_MULTIPLIER: %w", err)
	}
	runParallelism, err := strconv.Atoi(getEnv("PAYROLL_RUN_PARALLELISM", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_RUN_PARALLELISM: %w", err)
	}

	config.Payroll = PayrollConfig{
		GOSIEmployeeRate:   gosiEmployee,
		GOSIEmployerRate:   gosiEmployer,
		StandardDailyHours: dailyHours,
		OvertimeMultiplier: overtimeMultiplier,
		ClampExcessAbsence: getEnv("PAYROLL_CLAMP_EXCESS_ABSENCE", "true") == "true",
		RunParallelism:     runParallelism,
		PayslipStoragePath: getEnv("PAYSLIP_STORAGE_PATH", "storage/payslips"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Payroll.GOSIEmployeeRate.IsNegative() || c.Payroll.GOSIEmployerRate.IsNegative() {
		return fmt.Errorf("GOSI rates must be non-negative")
	}
	if !c.Payroll.StandardDailyHours.IsPositive() {
		return fmt.Errorf("PAYROLL_STANDARD_DAILY_HOURS must be positive")
	}
	if c.Payroll.RunParallelism < 1 {
		return fmt.Errorf("PAYROLL_RUN_PARALLELISM must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDecimal(key, fallback string) (decimal.Decimal, error) {
	return decimal.NewFromString(getEnv(key, fallback))
}
