package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/entities"
	"hr-system/internal/services"
	"hr-system/pkg/api"
	apperrors "hr-system/pkg/errors"
)

// referenceKinds maps the :kind path segment onto a dictionary.
var referenceKinds = map[string]entities.ReferenceKind{
	"companies":     entities.RefCompany,
	"departments":   entities.RefDepartment,
	"jobs":          entities.RefJob,
	"nationalities": entities.RefNationality,
}

type ReferenceController struct {
	referenceService *services.ReferenceService
	logger           *zap.Logger
}

func NewReferenceController(referenceService *services.ReferenceService, logger *zap.Logger) *ReferenceController {
	return &ReferenceController{referenceService: referenceService, logger: logger}
}

func parseKindParam(ctx echo.Context) (entities.ReferenceKind, error) {
	kind, ok := referenceKinds[ctx.Param("kind")]
	if !ok {
		return "", apperrors.BadRequest("unknown reference kind "+ctx.Param("kind"), nil)
	}
	return kind, nil
}

func (c *ReferenceController) GetReferences(ctx echo.Context) error {
	kind, err := parseKindParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	references, total, err := c.referenceService.GetReferences(ctx.Request().Context(), kind)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessList(ctx, "references retrieved", references, total, 1, int(total))
}

func (c *ReferenceController) FindReference(ctx echo.Context) error {
	kind, err := parseKindParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	reference, err := c.referenceService.FindReference(ctx.Request().Context(), kind, id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "reference found", reference)
}

func (c *ReferenceController) CreateReference(ctx echo.Context) error {
	kind, err := parseKindParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	var payload dto.CreateReferenceDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.BadRequest("invalid request body", err))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	reference, err := c.referenceService.CreateReference(ctx.Request().Context(), kind, payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "reference created", reference)
}

func (c *ReferenceController) UpdateReference(ctx echo.Context) error {
	kind, err := parseKindParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	var patch dto.UpdateReferenceDTO
	if err := ctx.Bind(&patch); err != nil {
		return api.ErrorResponse(ctx, apperrors.BadRequest("invalid request body", err))
	}
	if err := ctx.Validate(&patch); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	reference, err := c.referenceService.UpdateReference(ctx.Request().Context(), kind, id, patch)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "reference updated", reference)
}

func (c *ReferenceController) DeleteReference(ctx echo.Context) error {
	kind, err := parseKindParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := c.referenceService.DeleteReference(ctx.Request().Context(), kind, id); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne[any](ctx, http.StatusOK, "reference deleted", nil)
}
