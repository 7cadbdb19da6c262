package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/events"
	"hr-system/internal/services"
	"hr-system/pkg/api"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/utils"
)

type EmployeeController struct {
	employeeService *services.EmployeeService
	logger          *zap.Logger
}

func NewEmployeeController(employeeService *services.EmployeeService, logger *zap.Logger) *EmployeeController {
	return &EmployeeController{employeeService: employeeService, logger: logger}
}

// actorFromCtx reads the authenticated user out of the request context.
func actorFromCtx(ctx context.Context) events.Actor {
	actor := events.Actor{Email: utils.GetUserEmailFromCtx(ctx)}
	if userID, err := utils.GetUserIDFromCtx(ctx); err == nil {
		actor.UserID = &userID
	}
	return actor
}

func parseIDParam(ctx echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.BadRequest("invalid id", err)
	}
	return id, nil
}

func (c *EmployeeController) GetEmployees(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	employees, total, err := c.employeeService.GetEmployees(ctx.Request().Context(), filter)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessList(ctx, "employees retrieved", employees, total, filter.Page, filter.Limit)
}

func (c *EmployeeController) FindEmployee(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	employee, err := c.employeeService.FindEmployee(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "employee found", employee)
}

func (c *EmployeeController) CreateEmployee(ctx echo.Context) error {
	var payload dto.CreateEmployeeDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.BadRequest("invalid request body", err))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	employee, err := c.employeeService.CreateEmployee(ctx.Request().Context(), payload, actorFromCtx(ctx.Request().Context()))
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "employee created", employee)
}

func (c *EmployeeController) UpdateEmployee(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	var patch dto.UpdateEmployeeDTO
	if err := ctx.Bind(&patch); err != nil {
		return api.ErrorResponse(ctx, apperrors.BadRequest("invalid request body", err))
	}
	if err := ctx.Validate(&patch); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	employee, err := c.employeeService.UpdateEmployee(ctx.Request().Context(), id, patch, actorFromCtx(ctx.Request().Context()))
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "employee updated", employee)
}

func (c *EmployeeController) DeleteEmployee(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := c.employeeService.DeleteEmployee(ctx.Request().Context(), id, actorFromCtx(ctx.Request().Context())); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne[any](ctx, http.StatusOK, "employee deleted", nil)
}

// respondWithXLSX streams workbook bytes as a file download.
func respondWithXLSX(ctx echo.Context, name string, data []byte) error {
	filename := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return ctx.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
