package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hr-system/internal/services"
	"hr-system/pkg/api"
	"hr-system/pkg/utils"
)

type ReminderController struct {
	reminderService *services.ReminderService
	logger          *zap.Logger
}

func NewReminderController(reminderService *services.ReminderService, logger *zap.Logger) *ReminderController {
	return &ReminderController{reminderService: reminderService, logger: logger}
}

func (c *ReminderController) GetReminders(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter.WithPagination = true

	reminders, total, err := c.reminderService.GetReminders(ctx.Request().Context(), filter)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessList(ctx, "reminders retrieved", reminders, total, filter.Page, filter.Limit)
}

// RunReminders triggers a sweep on demand, outside the daily schedule.
func (c *ReminderController) RunReminders(ctx echo.Context) error {
	report, err := c.reminderService.Run(ctx.Request().Context())
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "reminder sweep finished", report)
}
