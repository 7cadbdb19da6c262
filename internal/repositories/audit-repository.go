package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"hr-system/internal/entities"
	"hr-system/pkg/types"
)

var auditAllowedFilterFields = map[string]string{
	"action":     "a.action",
	"user_email": "a.user_email",
}

type AuditRepositoryInterface interface {
	GetActivityLog(ctx context.Context, filter types.Filter) ([]entities.ActivityLog, uint64, error)
	AppendActivityLog(ctx context.Context, entry entities.ActivityLog) error
}

type AuditRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewAuditRepository(storage *pgxpool.Pool, logger *zap.Logger) AuditRepositoryInterface {
	return &AuditRepository{storage: storage, logger: logger}
}

func (r *AuditRepository) buildFilterQuery(filter types.Filter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argCounter := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(a.employee_no ILIKE $%d OR a.name_en ILIKE $%d OR a.name_ar LIKE $%d)",
			argCounter, argCounter, argCounter))
		args = append(args, "%"+filter.Search+"%")
		argCounter++
	}
	for key, value := range filter.Filter {
		if dbColumn, ok := auditAllowedFilterFields[key]; ok {
			conditions = append(conditions, fmt.Sprintf("%s = $%d", dbColumn, argCounter))
			args = append(args, value)
			argCounter++
		}
	}
	if from, ok := filter.Filter["from"]; ok && from != "" {
		conditions = append(conditions, fmt.Sprintf("a.timestamp >= $%d", argCounter))
		args = append(args, from)
		argCounter++
	}
	if to, ok := filter.Filter["to"]; ok && to != "" {
		conditions = append(conditions, fmt.Sprintf("a.timestamp <= $%d", argCounter))
		args = append(args, to)
		argCounter++
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *AuditRepository) GetActivityLog(ctx context.Context, filter types.Filter) ([]entities.ActivityLog, uint64, error) {
	whereClause, args := r.buildFilterQuery(filter)

	var total uint64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM activity_log AS a %s", whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.ActivityLog{}, 0, nil
	}

	limitClause := ""
	if filter.WithPagination {
		argCounter := len(args) + 1
		limitClause = fmt.Sprintf("LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	query := fmt.Sprintf(`SELECT a.id, a.employee_id, a.action, a.employee_no, a.name_en, a.name_ar,
		a.old_values, a.new_values, a.user_id, a.user_email, a.timestamp
		FROM activity_log a %s ORDER BY a.timestamp DESC %s`, whereClause, limitClause)

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries := make([]entities.ActivityLog, 0)
	for rows.Next() {
		var a entities.ActivityLog
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Action, &a.EmployeeNo, &a.NameEN, &a.NameAR,
			&a.OldValues, &a.NewValues, &a.UserID, &a.UserEmail, &a.Timestamp); err != nil {
			return nil, 0, fmt.Errorf("scan activity log: %w", err)
		}
		entries = append(entries, a)
	}
	return entries, total, rows.Err()
}

func (r *AuditRepository) AppendActivityLog(ctx context.Context, entry entities.ActivityLog) error {
	_, err := r.storage.Exec(ctx, `INSERT INTO activity_log
		(employee_id, action, employee_no, name_en, name_ar, old_values, new_values, user_id, user_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.EmployeeID, entry.Action, entry.EmployeeNo, entry.NameEN, entry.NameAR,
		entry.OldValues, entry.NewValues, entry.UserID, entry.UserEmail)
	return err
}
