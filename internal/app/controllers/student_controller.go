package controllers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/app/services"
	"github.com/fems12/WBL-Management-Sytem/internal/middleware"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/helpers"
)

const maxDocumentSize = 10 << 20 // 10 MB per uploaded form

// StudentController handles student lifecycle, archiving, sync and
// form document endpoints
type StudentController struct {
	studentService *services.StudentService
	syncService    *services.SyncService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, syncService *services.SyncService) *StudentController {
	return &StudentController{
		studentService: studentService,
		syncService:    syncService,
	}
}

// parseDocumentType maps the path segment to a known document type
func parseDocumentType(s string) (models.DocumentType, bool) {
	switch s {
	case "lapor-diri":
		return models.DocLaporDiri, true
	case "aku-janji":
		return models.DocAkuJanji, true
	}
	return "", false
}

// callerOwnsRecord reports whether a student caller is addressing their
// own matrix number. Staff and admin callers pass unconditionally.
func callerOwnsRecord(ctx *gin.Context, matrixNumber string) bool {
	if ctx.GetString(middleware.ContextRoleType) != string(models.RoleStudent) {
		return true
	}
	return ctx.GetString(middleware.ContextIdentifier) == matrixNumber
}

// CreateStudent registers a new student
// @Summary Create student
// @Description Creates a student record. The password defaults to the matrix number when omitted.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Matrix number already exists"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.CreateStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// GetStudent retrieves one student's dashboard projection
// @Summary Get student
// @Description Retrieves a student by matrix number with resolved assignment names and derived status
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param matrixNumber path string true "Matrix number"
// @Success 200 {object} dto.APIResponse{data=dto.StudentData} "Student retrieved"
// @Failure 403 {object} dto.ErrorResponse "Students may only view their own record"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{matrixNumber} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	matrixNumber := ctx.Param("matrixNumber")
	if !callerOwnsRecord(ctx, matrixNumber) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
		errorDetail = errorDetail.WithDetails("Students may only view their own record")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		return
	}

	data, err := c.studentService.GetStudentData(ctx, matrixNumber)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	})
}

// ListStudents lists students with filters and pagination
// @Summary List students
// @Description Lists students filtered by program, cohort and search text. Archived rows are excluded unless includeArchived is set.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param program query string false "Exact program filter"
// @Param cohort query string false "Exact cohort filter"
// @Param search query string false "Substring search over name and matrix number"
// @Param state query string false "Placement company state filter"
// @Param staffId query int false "Assigned staff member filter"
// @Param subject query string false "Subject mask for the staff filter" Enums(FYP1, FYP2, LI, ALL)
// @Param role query string false "Role mask for the staff filter" Enums(SUPERVISOR, PANEL, ANY)
// @Param includeArchived query bool false "Include archived students"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Students retrieved"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	var filters dto.VisibilityFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	includeArchived := ctx.Query("includeArchived") == "true"
	page, size := helpers.ParsePaginationParams(ctx)

	students, total, err := c.studentService.ListStudents(ctx, filters, includeArchived, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      students,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// UpdateStudent applies a partial profile update
// @Summary Update student
// @Description Updates the provided profile fields; omitted fields are left unchanged
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param matrixNumber path string true "Matrix number"
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse "Student updated"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{matrixNumber} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.studentService.UpdateStudent(ctx, ctx.Param("matrixNumber"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Student updated successfully"},
		Timestamp: time.Now(),
	})
}

// DeleteStudent removes a student record
// @Summary Delete student
// @Description Deletes the student row; audit entries for the matrix number are retained
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param matrixNumber path string true "Matrix number"
// @Success 200 {object} dto.APIResponse "Student deleted"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{matrixNumber} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	if err := c.studentService.DeleteStudent(ctx, ctx.Param("matrixNumber")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Student deleted successfully"},
		Timestamp: time.Now(),
	})
}

// ArchiveCohort archives every student in a cohort
// @Summary Archive cohort
// @Description Marks all students with the exact cohort value as archived, hiding them from default listings
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CohortRequest true "Cohort to archive"
// @Success 200 {object} dto.APIResponse "Cohort archived"
// @Router /students/archive [post]
func (c *StudentController) ArchiveCohort(ctx *gin.Context) {
	var req dto.CohortRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid cohort data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	count, err := c.studentService.ArchiveCohort(ctx, req.Cohort)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"archived": count},
		Timestamp: time.Now(),
	})
}

// UnarchiveCohort restores an archived cohort
// @Summary Unarchive cohort
// @Description Clears the archived flag for all students with the exact cohort value
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CohortRequest true "Cohort to restore"
// @Success 200 {object} dto.APIResponse "Cohort restored"
// @Router /students/unarchive [post]
func (c *StudentController) UnarchiveCohort(ctx *gin.Context) {
	var req dto.CohortRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid cohort data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	count, err := c.studentService.UnarchiveCohort(ctx, req.Cohort)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"unarchived": count},
		Timestamp: time.Now(),
	})
}

// ArchiveStudent archives a single student
// @Summary Archive student
// @Description Marks one student as archived, hiding them from default listings
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param matrixNumber path string true "Matrix number"
// @Success 200 {object} dto.APIResponse "Student archived"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{matrixNumber}/archive [post]
func (c *StudentController) ArchiveStudent(ctx *gin.Context) {
	err := c.studentService.SetArchived(ctx, ctx.Param("matrixNumber"), true, ctx.GetString(middleware.ContextIdentifier))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Student archived"},
		Timestamp: time.Now(),
	})
}

// UnarchiveStudent restores an archived student
// @Summary Unarchive student
// @Description Clears the archived flag on one student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param matrixNumber path string true "Matrix number"
// @Success 200 {object} dto.APIResponse "Student restored"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{matrixNumber}/unarchive [post]
func (c *StudentController) UnarchiveStudent(ctx *gin.Context) {
	err := c.studentService.SetArchived(ctx, ctx.Param("matrixNumber"), false, ctx.GetString(middleware.ContextIdentifier))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Student restored"},
		Timestamp: time.Now(),
	})
}

// SyncAssignments carries FYP1 assignments forward for the selected students
// @Summary Run assignment sync
// @Description Copies FYP1 company, panel and supervisor assignments into their LI/FYP2 counterparts wherever the target is still empty
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SyncSelectionRequest true "Students to sync"
// @Success 200 {object} dto.APIResponse{data=[]dto.SyncResult} "Per-student sync results"
// @Failure 400 {object} dto.ErrorResponse "Empty selection"
// @Router /students/sync [post]
func (c *StudentController) SyncAssignments(ctx *gin.Context) {
	var req dto.SyncSelectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid sync selection")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	results, err := c.syncService.SyncStudents(ctx, req.MatrixNumbers, ctx.GetString(middleware.ContextIdentifier))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      results,
		Timestamp: time.Now(),
	})
}

// UploadDocument stores a form PDF for a student
// @Summary Upload form document
// @Description Uploads a Lapor Diri or Aku Janji PDF and records its storage path on the student row
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param matrixNumber path string true "Matrix number"
// @Param docType path string true "Document type" Enums(lapor-diri, aku-janji)
// @Param file formData file true "PDF file"
// @Success 200 {object} dto.APIResponse "Document uploaded"
// @Failure 400 {object} dto.ErrorResponse "Missing file or unknown document type"
// @Failure 403 {object} dto.ErrorResponse "Students may only upload to their own record"
// @Router /students/{matrixNumber}/documents/{docType} [post]
func (c *StudentController) UploadDocument(ctx *gin.Context) {
	matrixNumber := ctx.Param("matrixNumber")
	if !callerOwnsRecord(ctx, matrixNumber) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
		errorDetail = errorDetail.WithDetails("Students may only upload to their own record")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		return
	}

	docType, ok := parseDocumentType(ctx.Param("docType"))
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown document type")
		errorDetail = errorDetail.WithDetails("Document type must be lapor-diri or aku-janji")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing document file")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if fileHeader.Size > maxDocumentSize {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "File too large")
		errorDetail = errorDetail.WithDetails("Documents are limited to 10 MB")
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
		contentType = "application/pdf"
	}

	path, err := c.studentService.UploadDocument(ctx, matrixNumber, docType, data, contentType, ctx.GetString(middleware.ContextIdentifier))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"path": path},
		Timestamp: time.Now(),
	})
}

// GetDocument resolves a stored form document to a download URL
// @Summary Get form document URL
// @Description Returns a time-limited download URL for a previously uploaded form document
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param matrixNumber path string true "Matrix number"
// @Param docType path string true "Document type" Enums(lapor-diri, aku-janji)
// @Success 200 {object} dto.APIResponse "Download URL"
// @Failure 404 {object} dto.ErrorResponse "Document not uploaded"
// @Router /students/{matrixNumber}/documents/{docType} [get]
func (c *StudentController) GetDocument(ctx *gin.Context) {
	matrixNumber := ctx.Param("matrixNumber")
	if !callerOwnsRecord(ctx, matrixNumber) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
		errorDetail = errorDetail.WithDetails("Students may only view their own documents")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		return
	}

	docType, ok := parseDocumentType(ctx.Param("docType"))
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown document type")
		errorDetail = errorDetail.WithDetails("Document type must be lapor-diri or aku-janji")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	url, err := c.studentService.DocumentURL(ctx, matrixNumber, docType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"url": url},
		Timestamp: time.Now(),
	})
}
