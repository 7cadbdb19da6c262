package services

import (
	"context"

	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/repositories"
	"hr-system/pkg/types"
)

type AuditService struct {
	auditRepo repositories.AuditRepositoryInterface
	logger    *zap.Logger
}

func NewAuditService(auditRepo repositories.AuditRepositoryInterface, logger *zap.Logger) *AuditService {
	return &AuditService{auditRepo: auditRepo, logger: logger}
}

func (s *AuditService) GetActivityLog(ctx context.Context, filter types.Filter) ([]dto.ActivityLogDTO, uint64, error) {
	entries, total, err := s.auditRepo.GetActivityLog(ctx, filter)
	if err != nil {
		s.logger.Error("failed to load activity log", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.ActivityLogDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.ToActivityLogDTO(entry))
	}
	return out, total, nil
}
