package employee

import "context"

// EmployeeRepository is the employee directory. Exists is the only call the
// attendance and leave services make before mutating anything.
type EmployeeRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, employee Employee) (Employee, error)
}
