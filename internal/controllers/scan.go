package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hr-system/internal/integrations/ocr"
	"hr-system/pkg/api"
	apperrors "hr-system/pkg/errors"
)

type ScanController struct {
	provider ocr.Provider
	logger   *zap.Logger
}

func NewScanController(provider ocr.Provider, logger *zap.Logger) *ScanController {
	return &ScanController{provider: provider, logger: logger}
}

// Scan extracts form-prefill fields from an uploaded document photo.
func (c *ScanController) Scan(ctx echo.Context) error {
	header, err := ctx.FormFile("file")
	if err != nil {
		return api.ErrorResponse(ctx, apperrors.BadRequest(`multipart field "file" is required`, err))
	}
	file, err := header.Open()
	if err != nil {
		return api.ErrorResponse(ctx, apperrors.BadRequest("could not open the uploaded file", err))
	}
	defer file.Close()

	result, err := c.provider.Scan(ctx.Request().Context(), file, header.Filename)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "document scanned", result)
}
