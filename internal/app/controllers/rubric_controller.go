package controllers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/app/services"
	"github.com/fems12/WBL-Management-Sytem/internal/middleware"
)

// RubricController handles assessment rubric files and templates
type RubricController struct {
	rubricService *services.RubricService
}

// NewRubricController creates a new RubricController
func NewRubricController(rubricService *services.RubricService) *RubricController {
	return &RubricController{
		rubricService: rubricService,
	}
}

// UpsertRubric uploads or replaces a rubric file
// @Summary Upsert rubric
// @Description Stores a rubric file for a subject/cohort/item combination, replacing any previous file for the same key
// @Tags rubrics
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param subject formData string true "Subject" Enums(FYP1, FYP2, LI)
// @Param cohort formData string true "Cohort"
// @Param itemName formData string true "Rubric item name"
// @Param file formData file true "Rubric file"
// @Success 200 {object} dto.APIResponse{data=models.Rubric} "Rubric stored"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /rubrics [post]
func (c *RubricController) UpsertRubric(ctx *gin.Context) {
	var req dto.UpsertRubricRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid rubric data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing rubric file")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	rubric, err := c.rubricService.UpsertRubric(ctx, &req, fileHeader.Filename, data, contentType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      rubric,
		Timestamp: time.Now(),
	})
}

// ListRubrics lists rubric files with optional filters
// @Summary List rubrics
// @Description Lists stored rubrics filtered by subject and cohort, each with a resolved download URL
// @Tags rubrics
// @Produce json
// @Security BearerAuth
// @Param subject query string false "Subject filter" Enums(FYP1, FYP2, LI)
// @Param cohort query string false "Cohort filter"
// @Success 200 {object} dto.APIResponse{data=[]dto.RubricData} "Rubrics retrieved"
// @Router /rubrics [get]
func (c *RubricController) ListRubrics(ctx *gin.Context) {
	subject := models.Subject(ctx.Query("subject"))
	rubrics, err := c.rubricService.ListRubrics(ctx, subject, ctx.Query("cohort"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      rubrics,
		Timestamp: time.Now(),
	})
}

// DeleteRubric removes a rubric row and its stored file
// @Summary Delete rubric
// @Description Deletes the rubric record and its object store file
// @Tags rubrics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rubric ID"
// @Success 200 {object} dto.APIResponse "Rubric deleted"
// @Failure 404 {object} dto.ErrorResponse "Rubric not found"
// @Router /rubrics/{id} [delete]
func (c *RubricController) DeleteRubric(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid rubric ID")
		errorDetail = errorDetail.WithDetails("Rubric ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.rubricService.DeleteRubric(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Rubric deleted successfully"},
		Timestamp: time.Now(),
	})
}

// GetTemplate returns the built-in assessment template for a subject
// @Summary Get rubric template
// @Description Returns the default assessment item breakdown for a subject
// @Tags rubrics
// @Produce json
// @Security BearerAuth
// @Param subject path string true "Subject" Enums(FYP1, FYP2, LI)
// @Success 200 {object} dto.APIResponse{data=[]models.RubricTemplate} "Template retrieved"
// @Failure 400 {object} dto.ErrorResponse "Unknown subject"
// @Router /rubrics/templates/{subject} [get]
func (c *RubricController) GetTemplate(ctx *gin.Context) {
	templates, err := c.rubricService.Templates(models.Subject(ctx.Param("subject")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      templates,
		Timestamp: time.Now(),
	})
}
