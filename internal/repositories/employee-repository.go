package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/entities"
	apperrors "hr-system/pkg/errors"
)

const employeeTable = "employees"

const employeeColumns = `e.id, e.employee_no, e.name_en, e.name_ar, e.nationality,
	e.company_id, e.department_id, e.job_id,
	e.passport_no, e.passport_expiry, e.card_no, e.card_expiry,
	e.emirates_id, e.emirates_id_expiry, e.residence_no, e.residence_expiry,
	e.email, e.phone,
	c.name_en, c.name_ar, d.name_en, d.name_ar, j.name_en, j.name_ar,
	e.added_at, e.updated_at`

const employeeJoins = `FROM employees e
	LEFT JOIN companies c ON c.id = e.company_id
	LEFT JOIN departments d ON d.id = e.department_id
	LEFT JOIN jobs j ON j.id = e.job_id`

type EmployeeRepositoryInterface interface {
	GetEmployees(ctx context.Context) ([]entities.Employee, error)
	FindEmployee(ctx context.Context, id uuid.UUID) (*entities.Employee, error)
	ExistsByNumber(ctx context.Context, employeeNo string) (bool, error)
	CreateEmployee(ctx context.Context, employee entities.Employee) (*entities.Employee, error)
	UpdateEmployee(ctx context.Context, id uuid.UUID, patch dto.UpdateEmployeeDTO) (*entities.Employee, error)
	DeleteEmployee(ctx context.Context, id uuid.UUID) error
}

type EmployeeRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewEmployeeRepository(storage *pgxpool.Pool, logger *zap.Logger) EmployeeRepositoryInterface {
	return &EmployeeRepository{storage: storage, logger: logger}
}

func scanEmployee(row pgx.Row) (*entities.Employee, error) {
	var e entities.Employee
	err := row.Scan(
		&e.ID, &e.EmployeeNo, &e.NameEN, &e.NameAR, &e.Nationality,
		&e.CompanyID, &e.DepartmentID, &e.JobID,
		&e.PassportNo, &e.PassportExpiry, &e.CardNo, &e.CardExpiry,
		&e.EmiratesID, &e.EmiratesIDExpiry, &e.ResidenceNo, &e.ResidenceExpiry,
		&e.Email, &e.Phone,
		&e.CompanyNameEN, &e.CompanyNameAR, &e.DepartmentNameEN, &e.DepartmentNameAR,
		&e.JobNameEN, &e.JobNameAR,
		&e.AddedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan employee: %w", err)
	}
	return &e, nil
}

// GetEmployees loads the whole roster with resolved reference names. The
// status classification and filter/sort run in memory against a single
// reference date, so the query itself stays unconditional.
func (r *EmployeeRepository) GetEmployees(ctx context.Context) ([]entities.Employee, error) {
	query := fmt.Sprintf(`SELECT %s %s ORDER BY e.employee_no ASC`, employeeColumns, employeeJoins)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]entities.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepository) FindEmployee(ctx context.Context, id uuid.UUID) (*entities.Employee, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE e.id = $1`, employeeColumns, employeeJoins)
	return scanEmployee(r.storage.QueryRow(ctx, query, id))
}

func (r *EmployeeRepository) ExistsByNumber(ctx context.Context, employeeNo string) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE employee_no = $1)`, employeeNo).Scan(&exists)
	return exists, err
}

func (r *EmployeeRepository) CreateEmployee(ctx context.Context, e entities.Employee) (*entities.Employee, error) {
	query := fmt.Sprintf(`WITH inserted AS (
		INSERT INTO employees (
			employee_no, name_en, name_ar, nationality,
			company_id, department_id, job_id,
			passport_no, passport_expiry, card_no, card_expiry,
			emirates_id, emirates_id_expiry, residence_no, residence_expiry,
			email, phone
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		RETURNING *
	)
	SELECT %s FROM inserted e
	LEFT JOIN companies c ON c.id = e.company_id
	LEFT JOIN departments d ON d.id = e.department_id
	LEFT JOIN jobs j ON j.id = e.job_id`, employeeColumns)

	created, err := scanEmployee(r.storage.QueryRow(ctx, query,
		e.EmployeeNo, e.NameEN, e.NameAR, e.Nationality,
		e.CompanyID, e.DepartmentID, e.JobID,
		e.PassportNo, e.PassportExpiry, e.CardNo, e.CardExpiry,
		e.EmiratesID, e.EmiratesIDExpiry, e.ResidenceNo, e.ResidenceExpiry,
		e.Email, e.Phone,
	))
	if err != nil {
		return nil, mapUniqueViolation(err, "employee number already exists")
	}
	return created, nil
}

func (r *EmployeeRepository) UpdateEmployee(ctx context.Context, id uuid.UUID, patch dto.UpdateEmployeeDTO) (*entities.Employee, error) {
	builder := sq.Update(employeeTable).
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id}).
		Set("updated_at", sq.Expr("NOW()"))

	hasChanges := false
	set := func(column string, value interface{}) {
		builder = builder.Set(column, value)
		hasChanges = true
	}

	if patch.EmployeeNo != nil {
		set("employee_no", *patch.EmployeeNo)
	}
	if patch.NameEN != nil {
		set("name_en", *patch.NameEN)
	}
	if patch.NameAR != nil {
		set("name_ar", *patch.NameAR)
	}
	if patch.Nationality != nil {
		set("nationality", nullable(*patch.Nationality))
	}
	if patch.CompanyID != nil {
		set("company_id", uuidOrNull(*patch.CompanyID))
	}
	if patch.DepartmentID != nil {
		set("department_id", uuidOrNull(*patch.DepartmentID))
	}
	if patch.JobID != nil {
		set("job_id", uuidOrNull(*patch.JobID))
	}
	if patch.PassportNo != nil {
		set("passport_no", nullable(*patch.PassportNo))
	}
	if patch.PassportExpiry != nil {
		set("passport_expiry", dateOrNull(*patch.PassportExpiry))
	}
	if patch.CardNo != nil {
		set("card_no", nullable(*patch.CardNo))
	}
	if patch.CardExpiry != nil {
		set("card_expiry", dateOrNull(*patch.CardExpiry))
	}
	if patch.EmiratesID != nil {
		set("emirates_id", nullable(*patch.EmiratesID))
	}
	if patch.EmiratesIDExpiry != nil {
		set("emirates_id_expiry", dateOrNull(*patch.EmiratesIDExpiry))
	}
	if patch.ResidenceNo != nil {
		set("residence_no", nullable(*patch.ResidenceNo))
	}
	if patch.ResidenceExpiry != nil {
		set("residence_expiry", dateOrNull(*patch.ResidenceExpiry))
	}
	if patch.Email != nil {
		set("email", nullable(*patch.Email))
	}
	if patch.Phone != nil {
		set("phone", nullable(*patch.Phone))
	}

	if !hasChanges {
		return r.FindEmployee(ctx, id)
	}

	query, args, err := builder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, err
	}
	var updatedID uuid.UUID
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapUniqueViolation(err, "employee number already exists")
	}
	return r.FindEmployee(ctx, updatedID)
}

func (r *EmployeeRepository) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// nullable maps "" to SQL NULL so a cleared optional field is stored as
// absent, not as an empty string.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func uuidOrNull(s string) interface{} {
	if s == "" {
		return nil
	}
	if id, err := uuid.Parse(s); err == nil {
		return id
	}
	return nil
}

func dateOrNull(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func mapUniqueViolation(err error, message string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperrors.Conflict(message)
	}
	return err
}
