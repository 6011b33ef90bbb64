package employee

import "errors"

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrEmployeeCodeExists     = errors.New("employee code already exists")
	ErrEmployeeHasNoSalary    = errors.New("employee has no basic salary configured")
	ErrEmployeeHasNoStructure = errors.New("employee has no salary structure assigned")
)
