package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emrekrt/placementhub/internal/app/controllers"
	"github.com/emrekrt/placementhub/internal/app/models"
	"github.com/emrekrt/placementhub/internal/app/models/dto"
	"github.com/emrekrt/placementhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	driveController *controllers.DriveController,
	roundController *controllers.RoundController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh-token", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Student profile routes
		students := authenticated.Group("/students")
		{
			students.GET("/me", studentController.GetMyProfile)
			students.PUT("/me", studentController.UpsertMyProfile)

			// Officer-only bulk CGPA upload
			studentsOfficerProtected := students.Group("")
			studentsOfficerProtected.Use(authMiddleware.RoleRequired(models.RolePlacementOfficer))
			{
				studentsOfficerProtected.POST("/cgpa", studentController.BulkUpdateCGPA)
			}

			// Staff-only placement status change
			studentsStaffProtected := students.Group("")
			studentsStaffProtected.Use(authMiddleware.StaffRequired())
			{
				studentsStaffProtected.POST("/:userId/placed", studentController.MarkPlaced)
			}
		}

		// Drive routes. Listing and detail are open to every authenticated
		// user; the services narrow what each role actually sees.
		drives := authenticated.Group("/drives")
		{
			drives.GET("", driveController.ListDrives)
			drives.GET("/:driveId", driveController.GetDrive)
			drives.POST("/:driveId/apply", driveController.Apply)

			// Staff-only drive management
			drivesStaffProtected := drives.Group("")
			drivesStaffProtected.Use(authMiddleware.StaffRequired())
			{
				drivesStaffProtected.POST("", driveController.CreateDrive)
				drivesStaffProtected.PUT("/:driveId", driveController.UpdateDrive)
				drivesStaffProtected.DELETE("/:driveId", driveController.DeleteDrive)
				drivesStaffProtected.GET("/:driveId/applicants", driveController.GetApplicants)

				// Selection round management
				drivesStaffProtected.GET("/:driveId/rounds", roundController.ListRounds)
				drivesStaffProtected.GET("/:driveId/rounds/:roundIndex/pool", roundController.GetCandidatePool)
				drivesStaffProtected.PATCH("/:driveId/rounds/:roundIndex/status", roundController.AdvanceStatus)
				drivesStaffProtected.PUT("/:driveId/rounds/:roundIndex/selections", roundController.SelectStudents)
			}
		}

		// Application routes
		applications := authenticated.Group("/applications")
		{
			applications.GET("/me", driveController.GetMyApplications)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
