package controllers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hr-system/internal/services"
	"hr-system/pkg/api"
	"hr-system/pkg/utils"
)

type AuditController struct {
	auditService *services.AuditService
	logger       *zap.Logger
}

func NewAuditController(auditService *services.AuditService, logger *zap.Logger) *AuditController {
	return &AuditController{auditService: auditService, logger: logger}
}

func (c *AuditController) GetActivityLog(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter.WithPagination = true

	entries, total, err := c.auditService.GetActivityLog(ctx.Request().Context(), filter)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessList(ctx, "activity log retrieved", entries, total, filter.Page, filter.Limit)
}
