package employee

import "time"

// Employee is the slice of the employee record the attendance and leave
// services rely on. Full employee management lives elsewhere.
type Employee struct {
	ID        string
	FullName  string
	Email     string
	CreatedAt time.Time
}
