package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hr-system/internal/services"
	"hr-system/pkg/api"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/utils"
)

// maxImportFileSize caps uploaded workbooks at 10 MiB.
const maxImportFileSize = 10 << 20

type ImportController struct {
	importer        *services.EmployeeImporter
	employeeService *services.EmployeeService
	logger          *zap.Logger
}

func NewImportController(
	importer *services.EmployeeImporter,
	employeeService *services.EmployeeService,
	logger *zap.Logger,
) *ImportController {
	return &ImportController{
		importer:        importer,
		employeeService: employeeService,
		logger:          logger,
	}
}

func openUpload(ctx echo.Context) (multipartFile, error) {
	header, err := ctx.FormFile("file")
	if err != nil {
		return nil, apperrors.BadRequest(`multipart field "file" is required`, err)
	}
	if header.Size > maxImportFileSize {
		return nil, apperrors.BadRequest("file too large, limit is 10 MB", nil)
	}
	file, err := header.Open()
	if err != nil {
		return nil, apperrors.BadRequest("could not open the uploaded file", err)
	}
	return file, nil
}

type multipartFile interface {
	Read(p []byte) (int, error)
	Close() error
}

// Template serves the empty import workbook.
func (c *ImportController) Template(ctx echo.Context) error {
	data, err := c.importer.Template()
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return respondWithXLSX(ctx, "employee_import_template", data)
}

// Preview parses the upload and reports row statuses without writing.
func (c *ImportController) Preview(ctx echo.Context) error {
	file, err := openUpload(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	defer file.Close()

	report, err := c.importer.Preview(ctx.Request().Context(), file)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "import preview ready", report)
}

// Commit parses the upload again and inserts the clean rows.
func (c *ImportController) Commit(ctx echo.Context) error {
	file, err := openUpload(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	defer file.Close()

	report, err := c.importer.Commit(ctx.Request().Context(), file, actorFromCtx(ctx.Request().Context()))
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "import finished", report)
}

// Export streams the roster as a workbook, honoring the same filters as the
// list endpoint.
func (c *ImportController) Export(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter.WithPagination = false

	employees, err := c.employeeService.GetEmployeeEntities(ctx.Request().Context(), filter)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	data, err := c.importer.Export(ctx.Request().Context(), employees)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return respondWithXLSX(ctx, "employees", data)
}
