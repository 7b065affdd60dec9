package employee

import "github.com/cmlabs-hris/sge-backend-go/internal/pkg/apperror"

var (
	ErrEmployeeNotFound = apperror.New(apperror.KindEmployeeNotFound, "employee not found")
)
