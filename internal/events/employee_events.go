package events

import (
	"github.com/google/uuid"

	"hr-system/internal/entities"
)

const (
	EmployeeCreatedName = "employee.created"
	EmployeeUpdatedName = "employee.updated"
	EmployeeDeletedName = "employee.deleted"
)

// Actor identifies who performed a mutation; zero value means the change
// came from an unauthenticated path such as a seeder.
type Actor struct {
	UserID *uuid.UUID
	Email  string
}

type EmployeeCreatedEvent struct {
	Employee entities.Employee
	Actor    Actor
}

func (e EmployeeCreatedEvent) Name() string { return EmployeeCreatedName }

// EmployeeUpdatedEvent carries both snapshots so the audit listener can
// record a field-level diff.
type EmployeeUpdatedEvent struct {
	Before entities.Employee
	After  entities.Employee
	Actor  Actor
}

func (e EmployeeUpdatedEvent) Name() string { return EmployeeUpdatedName }

type EmployeeDeletedEvent struct {
	Employee entities.Employee
	Actor    Actor
}

func (e EmployeeDeletedEvent) Name() string { return EmployeeDeletedName }
