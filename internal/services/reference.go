package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/entities"
	"hr-system/internal/match"
	"hr-system/internal/repositories"
)

const referenceCacheTTL = 10 * time.Minute

// ReferenceService manages the four lookup dictionaries. Candidate lists for
// the import resolver are cached in Redis keyed by kind and invalidated on
// every write.
type ReferenceService struct {
	referenceRepo repositories.ReferenceRepositoryInterface
	cache         repositories.CacheRepositoryInterface
	logger        *zap.Logger
}

func NewReferenceService(
	referenceRepo repositories.ReferenceRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) *ReferenceService {
	return &ReferenceService{
		referenceRepo: referenceRepo,
		cache:         cache,
		logger:        logger,
	}
}

func cacheKey(kind entities.ReferenceKind) string {
	return fmt.Sprintf("references:%s", kind)
}

func (s *ReferenceService) GetReferences(ctx context.Context, kind entities.ReferenceKind) ([]dto.ReferenceDTO, uint64, error) {
	references, err := s.referenceRepo.GetReferences(ctx, kind)
	if err != nil {
		s.logger.Error("failed to list references", zap.String("kind", string(kind)), zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.ReferenceDTO, 0, len(references))
	for _, r := range references {
		out = append(out, dto.ToReferenceDTO(r))
	}
	return out, uint64(len(out)), nil
}

func (s *ReferenceService) FindReference(ctx context.Context, kind entities.ReferenceKind, id uuid.UUID) (*dto.ReferenceDTO, error) {
	reference, err := s.referenceRepo.FindReference(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	d := dto.ToReferenceDTO(*reference)
	return &d, nil
}

func (s *ReferenceService) CreateReference(ctx context.Context, kind entities.ReferenceKind, payload dto.CreateReferenceDTO) (*dto.ReferenceDTO, error) {
	reference, err := s.referenceRepo.CreateReference(ctx, kind, entities.Reference{
		Code:   payload.Code,
		NameEN: payload.NameEN,
		NameAR: payload.NameAR,
	})
	if err != nil {
		s.logger.Error("failed to create reference", zap.String("kind", string(kind)), zap.Error(err))
		return nil, err
	}
	s.invalidate(ctx, kind)

	d := dto.ToReferenceDTO(*reference)
	return &d, nil
}

func (s *ReferenceService) UpdateReference(ctx context.Context, kind entities.ReferenceKind, id uuid.UUID, payload dto.UpdateReferenceDTO) (*dto.ReferenceDTO, error) {
	reference, err := s.referenceRepo.UpdateReference(ctx, kind, id, payload)
	if err != nil {
		s.logger.Error("failed to update reference",
			zap.String("kind", string(kind)), zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	s.invalidate(ctx, kind)

	d := dto.ToReferenceDTO(*reference)
	return &d, nil
}

// DeleteReference removes a dictionary row. Employees keep their records:
// linked foreign keys are nulled, nationality text is cleared.
func (s *ReferenceService) DeleteReference(ctx context.Context, kind entities.ReferenceKind, id uuid.UUID) error {
	if err := s.referenceRepo.DeleteReference(ctx, kind, id); err != nil {
		s.logger.Error("failed to delete reference",
			zap.String("kind", string(kind)), zap.String("id", id.String()), zap.Error(err))
		return err
	}
	s.invalidate(ctx, kind)
	return nil
}

// Candidates returns the dictionary as resolver candidates, served from the
// cache when fresh.
func (s *ReferenceService) Candidates(ctx context.Context, kind entities.ReferenceKind) ([]match.Candidate, error) {
	key := cacheKey(kind)
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
		var candidates []match.Candidate
		if err := json.Unmarshal([]byte(cached), &candidates); err == nil {
			return candidates, nil
		}
	}

	references, err := s.referenceRepo.GetReferences(ctx, kind)
	if err != nil {
		return nil, err
	}

	candidates := make([]match.Candidate, 0, len(references))
	for _, r := range references {
		candidates = append(candidates, match.Candidate{
			ID:     r.ID,
			Code:   r.Code,
			NameEN: r.NameEN,
			NameAR: r.NameAR,
		})
	}

	if raw, err := json.Marshal(candidates); err == nil {
		if err := s.cache.Set(ctx, key, raw, referenceCacheTTL); err != nil {
			s.logger.Warn("failed to cache reference candidates", zap.String("kind", string(kind)), zap.Error(err))
		}
	}
	return candidates, nil
}

func (s *ReferenceService) invalidate(ctx context.Context, kind entities.ReferenceKind) {
	if err := s.cache.Del(ctx, cacheKey(kind)); err != nil {
		s.logger.Warn("failed to invalidate reference cache", zap.String("kind", string(kind)), zap.Error(err))
	}
}
