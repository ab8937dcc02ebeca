package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/app/services"
	"github.com/fems12/WBL-Management-Sytem/internal/middleware"
)

// AuditController exposes the append-only change history
type AuditController struct {
	auditService     *services.AuditService
	dashboardService *services.DashboardService
}

// NewAuditController creates a new AuditController
func NewAuditController(auditService *services.AuditService, dashboardService *services.DashboardService) *AuditController {
	return &AuditController{
		auditService:     auditService,
		dashboardService: dashboardService,
	}
}

// StudentHistory lists a student's change history
// @Summary Get student history
// @Description Returns the newest audit entries recorded against a matrix number, most recent first
// @Tags audit
// @Produce json
// @Security BearerAuth
// @Param matrixNumber path string true "Matrix number"
// @Success 200 {object} dto.APIResponse{data=[]models.AuditEntry} "History retrieved"
// @Router /students/{matrixNumber}/history [get]
func (c *AuditController) StudentHistory(ctx *gin.Context) {
	entries, err := c.auditService.StudentHistory(ctx, ctx.Param("matrixNumber"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      entries,
		Timestamp: time.Now(),
	})
}

// RecentActivity lists the newest audit entries across all students
// @Summary Get recent activity
// @Description Returns the newest audit entries across the whole system, most recent first
// @Tags audit
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.AuditEntry} "Activity retrieved"
// @Router /audit/recent [get]
func (c *AuditController) RecentActivity(ctx *gin.Context) {
	entries, err := c.auditService.RecentActivity(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      entries,
		Timestamp: time.Now(),
	})
}

// DashboardSummary aggregates the metric tiles
// @Summary Get dashboard summary
// @Description Returns student, company, pending-document and pending-grading counts over the current filter set
// @Tags audit
// @Produce json
// @Security BearerAuth
// @Param program query string false "Program filter"
// @Param cohort query string false "Cohort filter"
// @Param search query string false "Substring search over name and matrix number"
// @Success 200 {object} dto.APIResponse{data=dto.DashboardSummary} "Summary retrieved"
// @Router /dashboard/summary [get]
func (c *AuditController) DashboardSummary(ctx *gin.Context) {
	var filters dto.VisibilityFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	summary, err := c.dashboardService.Summary(ctx, filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      summary,
		Timestamp: time.Now(),
	})
}
