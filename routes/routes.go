package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	controller "pims/controllers"
	"pims/middleware"
)

// SetupRoutes wires the resource API. Reads (list/retrieve, dashboard) are
// open to any caller; writes go through WriteProtected.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	protected := middleware.WriteProtected(db)

	authController := controller.NewAuthController(db, log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile))
	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)
	auth.Post("/token/refresh", authController.Refresh)

	clientController := controller.NewClientController(db, log.New(os.Stdout, "CLIENT: ", log.LstdFlags))
	clients := api.Group("/clients")
	clients.Get("/", clientController.GetClients)
	clients.Get("/:id", clientController.GetClient)
	clients.Post("/", protected, clientController.CreateClient)
	clients.Put("/:id", protected, clientController.UpdateClient)
	clients.Delete("/:id", protected, clientController.DeleteClient)

	projectController := controller.NewProjectController(db, log.New(os.Stdout, "PROJECT: ", log.LstdFlags))
	projects := api.Group("/projects")
	projects.Get("/", projectController.GetProjects)
	projects.Get("/:id", projectController.GetProject)
	projects.Post("/", protected, projectController.CreateProject)
	projects.Put("/:id", protected, projectController.UpdateProject)
	projects.Delete("/:id", protected, projectController.DeleteProject)

	credentialController := controller.NewCredentialController(db, log.New(os.Stdout, "CREDENTIAL: ", log.LstdFlags))
	credentials := api.Group("/credentials")
	credentials.Get("/", credentialController.GetCredentials)
	credentials.Get("/:id", credentialController.GetCredential)
	credentials.Post("/", protected, credentialController.CreateCredential)
	credentials.Put("/:id", protected, credentialController.UpdateCredential)
	credentials.Delete("/:id", protected, credentialController.DeleteCredential)

	teamController := controller.NewTeamController(db, log.New(os.Stdout, "TEAM: ", log.LstdFlags))
	teams := api.Group("/teams")
	teams.Get("/", teamController.GetTeams)
	teams.Get("/:id", teamController.GetTeam)
	teams.Post("/", protected, teamController.CreateTeam)
	teams.Put("/:id", protected, teamController.UpdateTeam)
	teams.Delete("/:id", protected, teamController.DeleteTeam)

	memberController := controller.NewMemberController(db, log.New(os.Stdout, "MEMBER: ", log.LstdFlags))
	members := api.Group("/members")
	members.Get("/", memberController.GetMembers)
	members.Get("/:id", memberController.GetMember)
	members.Post("/", protected, memberController.CreateMember)
	members.Put("/:id", protected, memberController.UpdateMember)
	members.Delete("/:id", protected, memberController.DeleteMember)

	assignmentController := controller.NewAssignmentController(db, log.New(os.Stdout, "ASSIGNMENT: ", log.LstdFlags))
	assignments := api.Group("/assigned-members")
	assignments.Get("/", assignmentController.GetAssignments)
	assignments.Get("/:id", assignmentController.GetAssignment)
	assignments.Post("/", protected, assignmentController.CreateAssignment)
	assignments.Put("/:id", protected, assignmentController.UpdateAssignment)
	assignments.Delete("/:id", protected, assignmentController.DeleteAssignment)

	activityController := controller.NewActivityController(db, log.New(os.Stdout, "ACTIVITY: ", log.LstdFlags))
	activities := api.Group("/activities")
	activities.Get("/", activityController.GetActivities)
	activities.Get("/:id", activityController.GetActivity)
	activities.Post("/", protected, activityController.CreateActivity)
	activities.Put("/:id", protected, activityController.UpdateActivity)
	activities.Delete("/:id", protected, activityController.DeleteActivity)

	dashboardController := controller.NewDashboardController(db, log.New(os.Stdout, "DASHBOARD: ", log.LstdFlags))
	dashboard := api.Group("/dashboard")
	dashboard.Get("/overview", dashboardController.GetOverview)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"code":    "not_found",
			"error":   "The requested resource was not found",
		})
	})
}
