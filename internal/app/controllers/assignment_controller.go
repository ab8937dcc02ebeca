package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/app/services"
	"github.com/fems12/WBL-Management-Sytem/internal/middleware"
)

// AssignmentController handles name-addressed assignment field updates
type AssignmentController struct {
	assignmentService *services.AssignmentService
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService *services.AssignmentService) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
	}
}

// SetField sets one assignment field by its human-readable name
// @Summary Set assignment field
// @Description Sets a single assignment field such as "FYP 1 SV" or "LI Company". A null value clears the field; reference fields are checked against existing staff/company rows.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param matrixNumber path string true "Matrix number"
// @Param request body dto.SetAssignmentFieldRequest true "Field name and value"
// @Success 200 {object} dto.APIResponse "Field updated"
// @Failure 400 {object} dto.ErrorResponse "Unknown field or invalid reference"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{matrixNumber}/assignments [put]
func (c *AssignmentController) SetField(ctx *gin.Context) {
	var req dto.SetAssignmentFieldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assignment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	err := c.assignmentService.SetField(ctx, ctx.Param("matrixNumber"), &req, ctx.GetString(middleware.ContextIdentifier))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Assignment field updated"},
		Timestamp: time.Now(),
	})
}

// ListFields lists the assignment field names the API accepts
// @Summary List assignment fields
// @Description Returns the human-readable assignment field names usable with the set endpoint
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]string} "Field names"
// @Router /assignments/fields [get]
func (c *AssignmentController) ListFields(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      models.AssignmentFieldNames(),
		Timestamp: time.Now(),
	})
}
