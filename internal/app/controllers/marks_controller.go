package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/app/services"
	"github.com/fems12/WBL-Management-Sytem/internal/middleware"
)

// MarksController handles the marks ledger endpoints
type MarksController struct {
	marksService *services.MarksService
}

// NewMarksController creates a new MarksController
func NewMarksController(marksService *services.MarksService) *MarksController {
	return &MarksController{
		marksService: marksService,
	}
}

// SetMarks applies a partial marks update
// @Summary Set marks
// @Description Updates the provided subject marks for a student. An explicit null clears a mark, an omitted field leaves it unchanged.
// @Tags marks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param matrixNumber path string true "Matrix number"
// @Param request body dto.SetMarksRequest true "Marks to set or clear"
// @Success 200 {object} dto.APIResponse{data=dto.MarksData} "Marks updated"
// @Failure 400 {object} dto.ErrorResponse "Mark outside the 0-100 range"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{matrixNumber}/marks [put]
func (c *MarksController) SetMarks(ctx *gin.Context) {
	var req dto.SetMarksRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid marks data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	data, err := c.marksService.SetMarks(ctx, ctx.Param("matrixNumber"), &req, ctx.GetString(middleware.ContextIdentifier))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	})
}

// GetMarks retrieves a student's marks and derived status
// @Summary Get marks
// @Description Retrieves the three subject marks and the derived completion status for a student
// @Tags marks
// @Produce json
// @Security BearerAuth
// @Param matrixNumber path string true "Matrix number"
// @Success 200 {object} dto.APIResponse{data=dto.MarksData} "Marks retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{matrixNumber}/marks [get]
func (c *MarksController) GetMarks(ctx *gin.Context) {
	data, err := c.marksService.GetMarks(ctx, ctx.Param("matrixNumber"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	})
}
