package server

import (
	_ "hospital_queue/docs"
	"hospital_queue/internal/auth"
	"hospital_queue/internal/handlers"
	"hospital_queue/internal/logging"
	"hospital_queue/internal/middleware"
	"hospital_queue/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps - всё, что нужно роутеру.
type Deps struct {
	Handler     *handlers.Handler
	Tokens      *auth.TokenIssuer
	Users       auth.UserLookup
	AuthLimiter *middleware.IPRateLimiter
	CORSOrigins []string
	Logger      zerolog.Logger
}

// @Title						Электронная очередь больницы
// @Description				Запись пациентов в очереди отделений и управление приёмом
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(logging.GinLogger(deps.Logger), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h := deps.Handler
	api := r.Group("/api")
	api.GET("/health", h.HealthHandler)
	api.GET("/departments", h.DepartmentsHandler)

	authGroup := api.Group("/auth")
	if deps.AuthLimiter != nil {
		authGroup.Use(middleware.RateLimit(deps.AuthLimiter))
	}
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.RefreshToken)
	}

	api.GET("/queue/wait-time/:department_id", h.WaitTimeHandler)

	queue := api.Group("/queue", auth.AuthMiddleware(deps.Tokens), auth.RequireRole(deps.Users, models.RolePatient))
	{
		queue.POST("/join", h.JoinQueueHandler)
		queue.GET("/position", h.PositionHandler)
		queue.GET("/history", h.HistoryHandler)
	}

	admin := api.Group("/admin", auth.AuthMiddleware(deps.Tokens), auth.RequireRole(deps.Users, models.RoleAdmin))
	{
		admin.POST("/call-next", h.CallNextHandler)
		admin.POST("/complete", h.CompleteHandler)
		admin.GET("/stats", h.StatsHandler)
	}

	return r
}
