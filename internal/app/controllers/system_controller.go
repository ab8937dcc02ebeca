package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/app/services"
	"github.com/fems12/WBL-Management-Sytem/internal/middleware"
)

// SystemController exposes the administrative danger zone
type SystemController struct {
	systemService *services.SystemService
}

// NewSystemController creates a new SystemController
func NewSystemController(systemService *services.SystemService) *SystemController {
	return &SystemController{
		systemService: systemService,
	}
}

// Reset wipes all domain data
// @Summary Full data reset
// @Description Deletes all students, companies, rubrics, audit entries and staff except the caller. Requires the exact confirmation phrase "RESET ALL DATA".
// @Tags system
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ResetRequest true "Confirmation phrase"
// @Success 200 {object} dto.APIResponse{data=dto.ResetReport} "Reset report"
// @Failure 400 {object} dto.ErrorResponse "Wrong confirmation phrase"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /system/reset [post]
func (c *SystemController) Reset(ctx *gin.Context) {
	var req dto.ResetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid reset data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	report, err := c.systemService.Reset(ctx, ctx.GetInt64(middleware.ContextAccountID), req.Confirmation)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      report,
		Timestamp: time.Now(),
	})
}
