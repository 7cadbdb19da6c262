package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/entities"
	"hr-system/internal/expiry"
	"hr-system/internal/repositories"
)

const (
	dashboardCacheKey = "dashboard:summary"
	dashboardCacheTTL = 5 * time.Minute
	topGroupsLimit    = 5
)

// DashboardService aggregates roster-wide counters. The summary is cached
// briefly in Redis: the counts drift as the reference date moves, but only
// at day granularity, so a short TTL is safe.
type DashboardService struct {
	employeeRepo repositories.EmployeeRepositoryInterface
	cache        repositories.CacheRepositoryInterface
	logger       *zap.Logger
	now          func() time.Time
}

func NewDashboardService(
	employeeRepo repositories.EmployeeRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		employeeRepo: employeeRepo,
		cache:        cache,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *DashboardService) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	if cached, err := s.cache.Get(ctx, dashboardCacheKey); err == nil && cached != "" {
		var summary dto.DashboardDTO
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return &summary, nil
		}
	}

	roster, err := s.employeeRepo.GetEmployees(ctx)
	if err != nil {
		s.logger.Error("failed to load roster for dashboard", zap.Error(err))
		return nil, err
	}

	summary := s.build(roster)

	if raw, err := json.Marshal(summary); err == nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL); err != nil {
			s.logger.Warn("failed to cache dashboard summary", zap.Error(err))
		}
	}
	return summary, nil
}

// Invalidate drops the cached summary; subscribed to employee mutation events.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if err := s.cache.Del(ctx, dashboardCacheKey); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}

func (s *DashboardService) build(roster []entities.Employee) *dto.DashboardDTO {
	ref := s.now()

	documents := make(map[string]dto.DocumentStatsDTO, len(entities.DocumentTypes))
	for doc, counts := range expiry.Counts(roster, ref) {
		documents[string(doc)] = dto.DocumentStatsDTO{
			Valid:    counts.Valid,
			Expiring: counts.Expiring,
			Expired:  counts.Expired,
			None:     counts.None,
		}
	}

	toDTO := func(groups []expiry.GroupCount) []dto.GroupCountDTO {
		out := make([]dto.GroupCountDTO, 0, len(groups))
		for _, g := range groups {
			out = append(out, dto.GroupCountDTO{Label: g.Label, Count: g.Count})
		}
		return out
	}
	derefLabel := func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	}

	return &dto.DashboardDTO{
		TotalEmployees: len(roster),
		Documents:      documents,
		TopCompanies: toDTO(expiry.TopGroups(roster, topGroupsLimit, func(e *entities.Employee) string {
			return derefLabel(e.CompanyNameEN)
		})),
		TopDepartments: toDTO(expiry.TopGroups(roster, topGroupsLimit, func(e *entities.Employee) string {
			return derefLabel(e.DepartmentNameEN)
		})),
		TopJobs: toDTO(expiry.TopGroups(roster, topGroupsLimit, func(e *entities.Employee) string {
			return derefLabel(e.JobNameEN)
		})),
		Nationalities: toDTO(expiry.TopGroups(roster, 0, func(e *entities.Employee) string {
			return derefLabel(e.Nationality)
		})),
	}
}
