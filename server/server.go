package server

import (
	"device-hub/auth"
	"device-hub/confs"
	"device-hub/db"
	"device-hub/handlers"
	httpHandler "device-hub/handlers/http"
	"device-hub/repositories"
	"device-hub/usecases"
	"device-hub/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	app *gin.Engine
	cfg *confs.Config
}

func NewServer(database db.Database, cfg *confs.Config) *Server {
	app := gin.Default()

	// Setup CORS middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	app.Use(cors.New(corsConfig))

	app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(database)
	deviceRepo := repositories.NewDevicePgRepository(database)
	readingRepo := repositories.NewDeviceReadingPgRepository(database)

	// Credential service and use cases
	authService := auth.NewService(cfg.JWTSecret, cfg.TokenTTL)
	userUseCase := usecases.NewUserUseCase(userRepo, deviceRepo)
	deviceUseCase := usecases.NewDeviceUseCase(deviceRepo, readingRepo)

	// Handlers
	authHandler := httpHandler.NewAuthHandler(authService, userRepo, userUseCase)
	userHandler := httpHandler.NewUserHandler(userUseCase)
	deviceHandler := httpHandler.NewDeviceHandler(deviceUseCase)
	readingHandler := httpHandler.NewReadingHandler(deviceUseCase)
	reportHandler := httpHandler.NewReportHandler(deviceUseCase)

	// Websocket manager and handler
	manager := ws.NewManager()
	wsHandler := handlers.NewWSHandler(manager, authService, userRepo, deviceUseCase)

	requireAuth := httpHandler.AuthMiddleware(authService, userRepo)

	// Setup API routes
	api := app.Group("/api/v1")
	{
		// Auth routes: the only calls that work without a resolved caller
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		// User routes
		users := api.Group("/users", requireAuth)
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/me", userHandler.GetMe)
			users.PUT("/me", userHandler.UpdateMe)
			users.DELETE("/me", userHandler.DeleteMe)
			users.GET("/:id", userHandler.GetUser)
		}

		// Device routes, all owner-scoped
		devices := api.Group("/devices", requireAuth)
		{
			devices.POST("", deviceHandler.CreateDevice)
			devices.GET("", deviceHandler.ListDevices)
			devices.GET("/connected", wsHandler.GetConnectedDevices)
			devices.GET("/:id", deviceHandler.GetDevice)
			devices.PUT("/:id", deviceHandler.UpdateDevice)
			devices.DELETE("/:id", deviceHandler.DeleteDevice)
			devices.POST("/:id/readings", readingHandler.CreateReading)
			devices.GET("/:id/readings", readingHandler.ListReadings)
			devices.GET("/:id/readings/report", reportHandler.ReadingsReport)
		}

		// Reading routes, scoped through the parent device
		readings := api.Group("/readings", requireAuth)
		{
			readings.GET("/:id", readingHandler.GetReading)
			readings.PUT("/:id", readingHandler.UpdateReading)
			readings.DELETE("/:id", readingHandler.DeleteReading)
		}
	}

	app.GET("/ws", wsHandler.HandleDeviceWS)

	return &Server{app: app, cfg: cfg}
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.app
}

func (s *Server) Start() error {
	return s.app.Run("0.0.0.0:" + s.cfg.Port)
}
