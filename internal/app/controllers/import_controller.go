package controllers

import (
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/app/services"
	"github.com/fems12/WBL-Management-Sytem/internal/middleware"
)

// ImportController handles bulk workbook imports
type ImportController struct {
	importService *services.ImportService
}

// NewImportController creates a new ImportController
func NewImportController(importService *services.ImportService) *ImportController {
	return &ImportController{
		importService: importService,
	}
}

// openWorkbook extracts the uploaded workbook from the multipart form
func openWorkbook(ctx *gin.Context) (multipart.File, bool) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing workbook file")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	return file, true
}

// ImportStudents bulk-creates students from a workbook
// @Summary Import students
// @Description Reads an Excel workbook of students and creates a row per record. Each student's initial password is their matrix number. Row failures are reported without aborting the rest of the import.
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Excel workbook"
// @Success 200 {object} dto.APIResponse{data=dto.ImportReport} "Import report"
// @Failure 400 {object} dto.ErrorResponse "Missing file or unreadable workbook"
// @Router /imports/students [post]
func (c *ImportController) ImportStudents(ctx *gin.Context) {
	file, ok := openWorkbook(ctx)
	if !ok {
		return
	}
	defer file.Close()

	report, err := c.importService.ImportStudents(ctx, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      report,
		Timestamp: time.Now(),
	})
}

// ImportCompanies bulk-creates companies from a workbook
// @Summary Import companies
// @Description Reads an Excel workbook of companies and creates a row per record, skipping names that already exist
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Excel workbook"
// @Success 200 {object} dto.APIResponse{data=dto.ImportReport} "Import report"
// @Failure 400 {object} dto.ErrorResponse "Missing file or unreadable workbook"
// @Router /imports/companies [post]
func (c *ImportController) ImportCompanies(ctx *gin.Context) {
	file, ok := openWorkbook(ctx)
	if !ok {
		return
	}
	defer file.Close()

	report, err := c.importService.ImportCompanies(ctx, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      report,
		Timestamp: time.Now(),
	})
}

// ImportTitles bulk-updates FYP titles from a workbook
// @Summary Import FYP titles
// @Description Reads an Excel workbook mapping matrix numbers to FYP titles and applies the changes, auditing each update
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Excel workbook"
// @Success 200 {object} dto.APIResponse{data=dto.ImportReport} "Import report"
// @Failure 400 {object} dto.ErrorResponse "Missing file or unreadable workbook"
// @Router /imports/titles [post]
func (c *ImportController) ImportTitles(ctx *gin.Context) {
	file, ok := openWorkbook(ctx)
	if !ok {
		return
	}
	defer file.Close()

	report, err := c.importService.ImportTitles(ctx, file, ctx.GetString(middleware.ContextIdentifier))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      report,
		Timestamp: time.Now(),
	})
}
