package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/entities"
	"hr-system/internal/events"
	"hr-system/internal/expiry"
	"hr-system/internal/repositories"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/eventbus"
	"hr-system/pkg/types"
)

// EmployeeService loads the roster and runs the classification and
// filter/sort engine over it in memory, so list filters, the dashboard and
// the reminder sweep all share one set of rules.
type EmployeeService struct {
	employeeRepo repositories.EmployeeRepositoryInterface
	bus          *eventbus.Bus
	logger       *zap.Logger
	// now is injectable for tests; the default is time.Now.
	now func() time.Time
}

func NewEmployeeService(
	employeeRepo repositories.EmployeeRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		bus:          bus,
		logger:       logger,
		now:          time.Now,
	}
}

// criteriaFromFilter maps the generic query filter onto the expiry engine's
// criteria and sort. Unknown filter keys and malformed ids are ignored rather
// than rejected.
func criteriaFromFilter(filter types.Filter) (expiry.Criteria, expiry.Sort) {
	c := expiry.Criteria{
		Search:      filter.Search,
		Nationality: filter.Filter["nationality"],
		Statuses:    map[entities.DocumentType]expiry.Status{},
	}

	parseID := func(key string) *uuid.UUID {
		if raw, ok := filter.Filter[key]; ok && raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				return &id
			}
		}
		return nil
	}
	c.CompanyID = parseID("company_id")
	c.DepartmentID = parseID("department_id")
	c.JobID = parseID("job_id")

	statusKeys := map[string]entities.DocumentType{
		"passport_status":    entities.DocPassport,
		"card_status":        entities.DocCard,
		"emirates_id_status": entities.DocEmiratesID,
		"residence_status":   entities.DocResidence,
	}
	for key, doc := range statusKeys {
		if raw, ok := filter.Filter[key]; ok {
			if status, valid := expiry.ParseStatus(raw); valid {
				c.Statuses[doc] = status
			}
		}
	}

	s := expiry.Sort{Arabic: filter.Filter["lang"] == "ar"}
	for key, direction := range filter.Sort {
		s.Key = expiry.SortKey(key)
		s.Desc = direction == "desc"
		break
	}
	return c, s
}

func (s *EmployeeService) GetEmployees(ctx context.Context, filter types.Filter) ([]dto.EmployeeDTO, uint64, error) {
	roster, err := s.employeeRepo.GetEmployees(ctx)
	if err != nil {
		s.logger.Error("failed to load roster", zap.Error(err))
		return nil, 0, err
	}

	criteria, sortBy := criteriaFromFilter(filter)
	ref := s.now()
	matched := expiry.FilterAndSort(roster, criteria, sortBy, ref)
	total := uint64(len(matched))

	if filter.WithPagination && filter.Limit > 0 {
		start := filter.Offset
		if start > len(matched) {
			start = len(matched)
		}
		end := start + filter.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}

	out := make([]dto.EmployeeDTO, 0, len(matched))
	for i := range matched {
		out = append(out, dto.ToEmployeeDTO(&matched[i], ref))
	}
	return out, total, nil
}

// GetEmployeeEntities returns the filtered, sorted roster without
// pagination or DTO mapping; the export path renders it to a workbook.
func (s *EmployeeService) GetEmployeeEntities(ctx context.Context, filter types.Filter) ([]entities.Employee, error) {
	roster, err := s.employeeRepo.GetEmployees(ctx)
	if err != nil {
		s.logger.Error("failed to load roster", zap.Error(err))
		return nil, err
	}
	criteria, sortBy := criteriaFromFilter(filter)
	return expiry.FilterAndSort(roster, criteria, sortBy, s.now()), nil
}

func (s *EmployeeService) FindEmployee(ctx context.Context, id uuid.UUID) (*dto.EmployeeDTO, error) {
	employee, err := s.employeeRepo.FindEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	d := dto.ToEmployeeDTO(employee, s.now())
	return &d, nil
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, payload dto.CreateEmployeeDTO, actor events.Actor) (*dto.EmployeeDTO, error) {
	employee, err := entityFromCreateDTO(payload)
	if err != nil {
		return nil, err
	}

	created, err := s.employeeRepo.CreateEmployee(ctx, *employee)
	if err != nil {
		s.logger.Error("failed to create employee",
			zap.String("employee_no", payload.EmployeeNo), zap.Error(err))
		return nil, err
	}

	s.bus.Publish(ctx, events.EmployeeCreatedEvent{Employee: *created, Actor: actor})
	s.logger.Info("employee created",
		zap.String("id", created.ID.String()),
		zap.String("employee_no", created.EmployeeNo))

	d := dto.ToEmployeeDTO(created, s.now())
	return &d, nil
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uuid.UUID, patch dto.UpdateEmployeeDTO, actor events.Actor) (*dto.EmployeeDTO, error) {
	before, err := s.employeeRepo.FindEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.employeeRepo.UpdateEmployee(ctx, id, patch)
	if err != nil {
		s.logger.Error("failed to update employee", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	s.bus.Publish(ctx, events.EmployeeUpdatedEvent{Before: *before, After: *updated, Actor: actor})

	d := dto.ToEmployeeDTO(updated, s.now())
	return &d, nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uuid.UUID, actor events.Actor) error {
	employee, err := s.employeeRepo.FindEmployee(ctx, id)
	if err != nil {
		return err
	}

	if err := s.employeeRepo.DeleteEmployee(ctx, id); err != nil {
		s.logger.Error("failed to delete employee", zap.String("id", id.String()), zap.Error(err))
		return err
	}

	s.bus.Publish(ctx, events.EmployeeDeletedEvent{Employee: *employee, Actor: actor})
	s.logger.Info("employee deleted",
		zap.String("id", id.String()),
		zap.String("employee_no", employee.EmployeeNo))
	return nil
}

// entityFromCreateDTO validates date strings and reference ids up front so
// the repository only sees well-formed values.
func entityFromCreateDTO(payload dto.CreateEmployeeDTO) (*entities.Employee, error) {
	e := entities.Employee{
		EmployeeNo: payload.EmployeeNo,
		NameEN:     payload.NameEN,
		NameAR:     payload.NameAR,
	}

	strPtr := func(v string) *string {
		if v == "" {
			return nil
		}
		return &v
	}
	e.Nationality = strPtr(payload.Nationality)
	e.PassportNo = strPtr(payload.PassportNo)
	e.CardNo = strPtr(payload.CardNo)
	e.EmiratesID = strPtr(payload.EmiratesID)
	e.ResidenceNo = strPtr(payload.ResidenceNo)
	e.Email = strPtr(payload.Email)
	e.Phone = strPtr(payload.Phone)

	idPtr := func(field, v string) (*uuid.UUID, error) {
		if v == "" {
			return nil, nil
		}
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, apperrors.BadRequest("invalid "+field, err)
		}
		return &id, nil
	}
	var err error
	if e.CompanyID, err = idPtr("company_id", payload.CompanyID); err != nil {
		return nil, err
	}
	if e.DepartmentID, err = idPtr("department_id", payload.DepartmentID); err != nil {
		return nil, err
	}
	if e.JobID, err = idPtr("job_id", payload.JobID); err != nil {
		return nil, err
	}

	datePtr := func(field, v string) (*time.Time, error) {
		if v == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, apperrors.BadRequest("invalid "+field+", expected YYYY-MM-DD", err)
		}
		return &t, nil
	}
	if e.PassportExpiry, err = datePtr("passport_expiry", payload.PassportExpiry); err != nil {
		return nil, err
	}
	if e.CardExpiry, err = datePtr("card_expiry", payload.CardExpiry); err != nil {
		return nil, err
	}
	if e.EmiratesIDExpiry, err = datePtr("emirates_id_expiry", payload.EmiratesIDExpiry); err != nil {
		return nil, err
	}
	if e.ResidenceExpiry, err = datePtr("residence_expiry", payload.ResidenceExpiry); err != nil {
		return nil, err
	}

	return &e, nil
}
