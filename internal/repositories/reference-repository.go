package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/entities"
	apperrors "hr-system/pkg/errors"
)

type ReferenceRepositoryInterface interface {
	GetReferences(ctx context.Context, kind entities.ReferenceKind) ([]entities.Reference, error)
	FindReference(ctx context.Context, kind entities.ReferenceKind, id uuid.UUID) (*entities.Reference, error)
	CreateReference(ctx context.Context, kind entities.ReferenceKind, ref entities.Reference) (*entities.Reference, error)
	UpdateReference(ctx context.Context, kind entities.ReferenceKind, id uuid.UUID, patch dto.UpdateReferenceDTO) (*entities.Reference, error)
	DeleteReference(ctx context.Context, kind entities.ReferenceKind, id uuid.UUID) error
}

// ReferenceRepository serves all four dictionary tables; they share one shape
// (code, name_en, name_ar) so the queries are parameterized by table name.
type ReferenceRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewReferenceRepository(storage *pgxpool.Pool, logger *zap.Logger) ReferenceRepositoryInterface {
	return &ReferenceRepository{storage: storage, logger: logger}
}

func scanReference(row pgx.Row) (*entities.Reference, error) {
	var ref entities.Reference
	err := row.Scan(&ref.ID, &ref.Code, &ref.NameEN, &ref.NameAR, &ref.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan reference: %w", err)
	}
	return &ref, nil
}

func (r *ReferenceRepository) GetReferences(ctx context.Context, kind entities.ReferenceKind) ([]entities.Reference, error) {
	query := fmt.Sprintf(`SELECT id, code, name_en, name_ar, created_at FROM %s ORDER BY name_en ASC`, kind.Table())
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make([]entities.Reference, 0)
	for rows.Next() {
		ref, err := scanReference(rows)
		if err != nil {
			return nil, err
		}
		refs = append(refs, *ref)
	}
	return refs, rows.Err()
}

func (r *ReferenceRepository) FindReference(ctx context.Context, kind entities.ReferenceKind, id uuid.UUID) (*entities.Reference, error) {
	query := fmt.Sprintf(`SELECT id, code, name_en, name_ar, created_at FROM %s WHERE id = $1`, kind.Table())
	return scanReference(r.storage.QueryRow(ctx, query, id))
}

func (r *ReferenceRepository) CreateReference(ctx context.Context, kind entities.ReferenceKind, ref entities.Reference) (*entities.Reference, error) {
	query := fmt.Sprintf(`INSERT INTO %s (code, name_en, name_ar) VALUES ($1, $2, $3)
		RETURNING id, code, name_en, name_ar, created_at`, kind.Table())
	created, err := scanReference(r.storage.QueryRow(ctx, query,
		strings.ToUpper(strings.TrimSpace(ref.Code)), ref.NameEN, ref.NameAR))
	if err != nil {
		return nil, mapUniqueViolation(err, fmt.Sprintf("%s code already exists", kind))
	}
	return created, nil
}

func (r *ReferenceRepository) UpdateReference(ctx context.Context, kind entities.ReferenceKind, id uuid.UUID, patch dto.UpdateReferenceDTO) (*entities.Reference, error) {
	builder := sq.Update(kind.Table()).
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id})

	hasChanges := false
	if patch.Code != nil {
		builder = builder.Set("code", strings.ToUpper(strings.TrimSpace(*patch.Code)))
		hasChanges = true
	}
	if patch.NameEN != nil {
		builder = builder.Set("name_en", *patch.NameEN)
		hasChanges = true
	}
	if patch.NameAR != nil {
		builder = builder.Set("name_ar", *patch.NameAR)
		hasChanges = true
	}
	if !hasChanges {
		return r.FindReference(ctx, kind, id)
	}

	query, args, err := builder.Suffix("RETURNING id, code, name_en, name_ar, created_at").ToSql()
	if err != nil {
		return nil, err
	}
	updated, err := scanReference(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, mapUniqueViolation(err, fmt.Sprintf("%s code already exists", kind))
	}
	return updated, nil
}

// DeleteReference nullifies the dictionary link on every referencing employee
// before removing the row: reference churn must never destroy employee
// records. The FK columns carry ON DELETE SET NULL; nationality is free text,
// so it is cleared explicitly. The two statements are deliberately separate
// (no transaction), matching the documented cascade semantics.
func (r *ReferenceRepository) DeleteReference(ctx context.Context, kind entities.ReferenceKind, id uuid.UUID) error {
	if kind == entities.RefNationality {
		ref, err := r.FindReference(ctx, kind, id)
		if err != nil {
			return err
		}
		if _, err := r.storage.Exec(ctx,
			`UPDATE employees SET nationality = NULL WHERE nationality = $1`, ref.NameEN); err != nil {
			r.logger.Error("failed to clear nationality on employees",
				zap.String("nationality", ref.NameEN), zap.Error(err))
			return err
		}
	}

	result, err := r.storage.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, kind.Table()), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
