package loan

import "errors"

var (
	ErrLoanNotFound          = errors.New("loan not found")
	ErrInvalidLoanTransition = errors.New("invalid loan status transition")
	ErrLoanNotActive         = errors.New("loan is not active")
	ErrEmployeeHasActiveLoan = errors.New("employee already has an active loan")
)
