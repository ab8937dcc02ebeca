package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fems12/WBL-Management-Sytem/internal/app/controllers"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	marksController *controllers.MarksController,
	assignmentController *controllers.AssignmentController,
	staffController *controllers.StaffController,
	companyController *controllers.CompanyController,
	rubricController *controllers.RubricController,
	importController *controllers.ImportController,
	auditController *controllers.AuditController,
	systemController *controllers.SystemController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	admin := string(models.RoleAdmin)
	staff := string(models.RoleStaff)

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/forgot-password", authController.ForgotPassword)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.POST("/auth/change-password", authController.ChangePassword)

		// Student records. Read access for students is limited to their
		// own record inside the controller.
		students := authenticated.Group("/students")
		{
			students.GET("/:matrixNumber", studentController.GetStudent)
			students.GET("/:matrixNumber/documents/:docType", studentController.GetDocument)
			students.POST("/:matrixNumber/documents/:docType", studentController.UploadDocument)

			studentsStaff := students.Group("")
			studentsStaff.Use(authMiddleware.RoleRequired(staff, admin))
			{
				studentsStaff.GET("", studentController.ListStudents)
				studentsStaff.GET("/:matrixNumber/marks", marksController.GetMarks)
				studentsStaff.PUT("/:matrixNumber/marks", marksController.SetMarks)
				studentsStaff.GET("/:matrixNumber/history", auditController.StudentHistory)
			}

			studentsAdmin := students.Group("")
			studentsAdmin.Use(authMiddleware.RoleRequired(admin))
			{
				studentsAdmin.POST("", studentController.CreateStudent)
				studentsAdmin.PUT("/:matrixNumber", studentController.UpdateStudent)
				studentsAdmin.DELETE("/:matrixNumber", studentController.DeleteStudent)
				studentsAdmin.PUT("/:matrixNumber/assignments", assignmentController.SetField)
				studentsAdmin.POST("/:matrixNumber/archive", studentController.ArchiveStudent)
				studentsAdmin.POST("/:matrixNumber/unarchive", studentController.UnarchiveStudent)
				studentsAdmin.POST("/archive", studentController.ArchiveCohort)
				studentsAdmin.POST("/unarchive", studentController.UnarchiveCohort)
				studentsAdmin.POST("/sync", studentController.SyncAssignments)
			}
		}

		// Staff accounts and the caller's visible student set
		staffGroup := authenticated.Group("/staff")
		{
			staffRead := staffGroup.Group("")
			staffRead.Use(authMiddleware.RoleRequired(staff, admin))
			{
				staffRead.GET("", staffController.ListStaff)
				staffRead.GET("/me/students", staffController.MyStudents)
				staffRead.GET("/:id", staffController.GetStaff)
			}

			staffAdmin := staffGroup.Group("")
			staffAdmin.Use(authMiddleware.RoleRequired(admin))
			{
				staffAdmin.POST("", staffController.CreateStaff)
				staffAdmin.PUT("/:id", staffController.UpdateStaff)
				staffAdmin.DELETE("/:id", staffController.DeleteStaff)
			}
		}

		// Placement companies
		companies := authenticated.Group("/companies")
		{
			companiesRead := companies.Group("")
			companiesRead.Use(authMiddleware.RoleRequired(staff, admin))
			{
				companiesRead.GET("", companyController.ListCompanies)
				companiesRead.GET("/:id", companyController.GetCompany)
			}

			companiesAdmin := companies.Group("")
			companiesAdmin.Use(authMiddleware.RoleRequired(admin))
			{
				companiesAdmin.POST("", companyController.CreateCompany)
				companiesAdmin.PUT("/:id", companyController.UpdateCompany)
				companiesAdmin.DELETE("/:id", companyController.DeleteCompany)
			}
		}

		// Assessment rubrics. Reads are open to every portal so students
		// can see how they will be assessed.
		rubrics := authenticated.Group("/rubrics")
		{
			rubrics.GET("", rubricController.ListRubrics)
			rubrics.GET("/templates/:subject", rubricController.GetTemplate)

			rubricsAdmin := rubrics.Group("")
			rubricsAdmin.Use(authMiddleware.RoleRequired(admin))
			{
				rubricsAdmin.POST("", rubricController.UpsertRubric)
				rubricsAdmin.DELETE("/:id", rubricController.DeleteRubric)
			}
		}

		// Assignment field catalog
		assignments := authenticated.Group("/assignments")
		assignments.Use(authMiddleware.RoleRequired(staff, admin))
		{
			assignments.GET("/fields", assignmentController.ListFields)
		}

		// Bulk workbook imports
		imports := authenticated.Group("/imports")
		imports.Use(authMiddleware.RoleRequired(admin))
		{
			imports.POST("/students", importController.ImportStudents)
			imports.POST("/companies", importController.ImportCompanies)
			imports.POST("/titles", importController.ImportTitles)
		}

		// Danger zone
		system := authenticated.Group("/system")
		system.Use(authMiddleware.RoleRequired(admin))
		{
			system.POST("/reset", systemController.Reset)
		}

		// Audit trail and dashboard
		activity := authenticated.Group("")
		activity.Use(authMiddleware.RoleRequired(staff, admin))
		{
			activity.GET("/audit/recent", auditController.RecentActivity)
			activity.GET("/dashboard/summary", auditController.DashboardSummary)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
