package employee

import "time"

type Employee struct {
	ID           string
	FullName     string
	Email        string
	Department   string
	PasswordHash string
	IsApprover   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
