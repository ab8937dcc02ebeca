package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/app/services"
	"github.com/fems12/WBL-Management-Sytem/internal/middleware"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/helpers"
)

// StaffController handles staff account management and the
// role-scoped student visibility endpoint
type StaffController struct {
	staffService      *services.StaffService
	visibilityService *services.VisibilityService
}

// NewStaffController creates a new StaffController
func NewStaffController(staffService *services.StaffService, visibilityService *services.VisibilityService) *StaffController {
	return &StaffController{
		staffService:      staffService,
		visibilityService: visibilityService,
	}
}

func parseStaffID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid staff ID")
		errorDetail = errorDetail.WithDetails("Staff ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// CreateStaff registers a new staff account
// @Summary Create staff
// @Description Creates a staff account with the STAFF role
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStaffRequest true "Staff information"
// @Success 201 {object} dto.APIResponse{data=models.Staff} "Staff created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Staff ID number already exists"
// @Router /staff [post]
func (c *StaffController) CreateStaff(ctx *gin.Context) {
	var req dto.CreateStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid staff data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	staff, err := c.staffService.CreateStaff(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      staff,
		Timestamp: time.Now(),
	})
}

// GetStaff retrieves one staff member
// @Summary Get staff
// @Description Retrieves a staff member by ID
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param id path int true "Staff ID"
// @Success 200 {object} dto.APIResponse{data=models.Staff} "Staff retrieved"
// @Failure 404 {object} dto.ErrorResponse "Staff not found"
// @Router /staff/{id} [get]
func (c *StaffController) GetStaff(ctx *gin.Context) {
	id, ok := parseStaffID(ctx)
	if !ok {
		return
	}

	staff, err := c.staffService.GetStaff(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      staff,
		Timestamp: time.Now(),
	})
}

// ListStaff lists staff members with filters and pagination
// @Summary List staff
// @Description Lists staff filtered by department and search text
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param department query string false "Exact department filter"
// @Param search query string false "Substring search over name and staff ID number"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Staff retrieved"
// @Router /staff [get]
func (c *StaffController) ListStaff(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	staff, total, err := c.staffService.ListStaff(ctx, ctx.Query("department"), ctx.Query("search"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      staff,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// UpdateStaff updates a staff member's profile
// @Summary Update staff
// @Description Updates a staff member's name, email and department
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Staff ID"
// @Param request body dto.UpdateStaffRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Staff} "Staff updated"
// @Failure 404 {object} dto.ErrorResponse "Staff not found"
// @Router /staff/{id} [put]
func (c *StaffController) UpdateStaff(ctx *gin.Context) {
	id, ok := parseStaffID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid staff data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	staff, err := c.staffService.UpdateStaff(ctx, id, req.Name, req.Email, req.Department)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      staff,
		Timestamp: time.Now(),
	})
}

// DeleteStaff removes a staff account
// @Summary Delete staff
// @Description Deletes the staff row; assignment columns referencing it are cleared by the database
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param id path int true "Staff ID"
// @Success 200 {object} dto.APIResponse "Staff deleted"
// @Failure 404 {object} dto.ErrorResponse "Staff not found"
// @Router /staff/{id} [delete]
func (c *StaffController) DeleteStaff(ctx *gin.Context) {
	id, ok := parseStaffID(ctx)
	if !ok {
		return
	}

	if err := c.staffService.DeleteStaff(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Staff deleted successfully"},
		Timestamp: time.Now(),
	})
}

// MyStudents lists the students visible to the authenticated staff member
// @Summary List my students
// @Description Resolves the students assigned to the caller for the requested subject and role, then applies the remaining filters
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param subject query string false "Subject filter" Enums(FYP1, FYP2, LI, ALL)
// @Param role query string false "Role filter" Enums(SUPERVISOR, PANEL, ANY)
// @Param department query string false "Department filter"
// @Param program query string false "Program filter"
// @Param cohort query string false "Cohort filter"
// @Param search query string false "Substring search over name and matrix number"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentData} "Visible students"
// @Router /staff/me/students [get]
func (c *StaffController) MyStudents(ctx *gin.Context) {
	var filters dto.VisibilityFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	staffID := ctx.GetInt64(middleware.ContextAccountID)
	students, err := c.visibilityService.VisibleStudents(ctx, staffID, filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      students,
		Timestamp: time.Now(),
	})
}
