package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"hr-system/internal/entities"
	"hr-system/pkg/types"
)

type ReminderRepositoryInterface interface {
	GetReminders(ctx context.Context, filter types.Filter) ([]entities.Reminder, uint64, error)
	CreateReminder(ctx context.Context, reminder entities.Reminder) (uuid.UUID, error)
	MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
	// WasReminded reports whether a reminder for this employee/document/date
	// combination has already been sent, so the daily run stays idempotent.
	WasReminded(ctx context.Context, employeeID uuid.UUID, docType entities.DocumentType, targetDate time.Time) (bool, error)
}

type ReminderRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewReminderRepository(storage *pgxpool.Pool, logger *zap.Logger) ReminderRepositoryInterface {
	return &ReminderRepository{storage: storage, logger: logger}
}

func (r *ReminderRepository) GetReminders(ctx context.Context, filter types.Filter) ([]entities.Reminder, uint64, error) {
	whereClause := ""
	args := []interface{}{}
	if status, ok := filter.Filter["status"]; ok && status != "" {
		whereClause = "WHERE r.status = $1"
		args = append(args, status)
	}

	var total uint64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM reminders AS r %s", whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Reminder{}, 0, nil
	}

	limitClause := ""
	if filter.WithPagination {
		argCounter := len(args) + 1
		limitClause = fmt.Sprintf("LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	query := fmt.Sprintf(`SELECT r.id, r.employee_id, r.type, r.target_date, r.status, r.sent_at, r.created_at
		FROM reminders r %s ORDER BY r.created_at DESC %s`, whereClause, limitClause)

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reminders := make([]entities.Reminder, 0)
	for rows.Next() {
		var rem entities.Reminder
		if err := rows.Scan(&rem.ID, &rem.EmployeeID, &rem.Type, &rem.TargetDate,
			&rem.Status, &rem.SentAt, &rem.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}
	return reminders, total, rows.Err()
}

func (r *ReminderRepository) CreateReminder(ctx context.Context, reminder entities.Reminder) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.storage.QueryRow(ctx, `INSERT INTO reminders (employee_id, type, target_date, status)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		reminder.EmployeeID, reminder.Type, reminder.TargetDate, reminder.Status).Scan(&id)
	return id, err
}

func (r *ReminderRepository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	_, err := r.storage.Exec(ctx, `UPDATE reminders SET status = $1, sent_at = $2 WHERE id = $3`,
		entities.ReminderSent, null.TimeFrom(sentAt), id)
	return err
}

func (r *ReminderRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	_, err := r.storage.Exec(ctx, `UPDATE reminders SET status = $1 WHERE id = $2`,
		entities.ReminderFailed, id)
	return err
}

func (r *ReminderRepository) WasReminded(ctx context.Context, employeeID uuid.UUID, docType entities.DocumentType, targetDate time.Time) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM reminders WHERE employee_id = $1 AND type = $2 AND target_date = $3 AND status = $4)`,
		employeeID, docType, targetDate, entities.ReminderSent).Scan(&exists)
	return exists, err
}
