package routes

import (
	"strings"

	"salondesk-backend/config"
	"salondesk-backend/controllers"
	"salondesk-backend/models"
	"salondesk-backend/services"
	"salondesk-backend/stores"
	"salondesk-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	clientStore := stores.NewClientStore(db)
	adminStore := stores.NewAdminStore(db)
	logStore := stores.NewReminderLogStore(db)
	reminderService := services.DefaultReminderService(config.ReminderSendDelay(), logStore)

	authController := controllers.NewAuthController(adminStore)
	clientController := controllers.NewClientController(clientStore)
	reminderController := controllers.NewReminderController(clientStore, reminderService)
	exportController := controllers.NewExportController(clientStore)
	dashboardController := controllers.NewDashboardController(clientStore)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(utils.GinLogger())

	origins := strings.Split(config.Getenv("CORS_ORIGINS", "http://localhost:3000"), ",")
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", authController.Me)
		auth.POST("/register", utils.RequireRole(models.RoleAdmin), authController.Register)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		clients := api.Group("/clients")
		{
			clients.POST("", clientController.CreateClient)
			clients.GET("", clientController.GetClients)
			clients.GET("/due", clientController.GetDueClients)
			clients.GET("/overdue", clientController.GetOverdueClients)
			clients.GET("/:id", clientController.GetClient)
			clients.PUT("/:id", clientController.UpdateClient)
			clients.DELETE("/:id", utils.RequireRole(models.RoleAdmin), clientController.DeleteClient)
			clients.POST("/:id/appointments", clientController.AddAppointment)
		}

		reminders := api.Group("/reminders")
		{
			reminders.POST("/send", reminderController.SendReminders)
			reminders.POST("/send-due", reminderController.SendDueReminders)
		}

		api.GET("/export/clients", exportController.ExportClients)

		api.GET("/dashboard", dashboardController.GetDashboardOverview)
	}

	return r
}
