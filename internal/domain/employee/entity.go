package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                 string
	CompanyID          string
	SalaryStructureID  *string
	EmployeeCode       string
	FullName           string
	Email              string
	BankName           string
	BankAccountNumber  string
	BasicSalary        *decimal.Decimal
	OvertimeMultiplier *decimal.Decimal
	EmploymentStatus   EmploymentStatus
	HireDate           time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
