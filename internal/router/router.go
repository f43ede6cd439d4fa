package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nucampus/campus-backend/internal/config"
	"github.com/nucampus/campus-backend/internal/handler"
	"github.com/nucampus/campus-backend/internal/middleware"
	"github.com/nucampus/campus-backend/internal/model"
	"github.com/nucampus/campus-backend/internal/response"
	"github.com/nucampus/campus-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Enrollment   *handler.EnrollmentHandler
	Notification *handler.NotificationHandler
	Course       *handler.CourseHandler
	Student      *handler.StudentHandler
	User         *handler.UserHandler
	Notice       *handler.NoticeHandler
	Media        *handler.MediaHandler
	WS           *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Serve uploaded files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check and Prometheus scrape endpoint.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.RequireAuth(authService)
	checkSession := middleware.CheckSession(authService)

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/logout", requireAuth, handlers.Auth.Logout)
		auth.GET("/me", requireAuth, checkSession, handlers.Auth.Me)
	}

	// ─── 2. Authenticated Group (any signed-in role) ───────────────────
	api := router.Group("/api/v1")
	api.Use(requireAuth, checkSession)
	{
		api.GET("/courses", handlers.Course.List)
		api.GET("/courses/:id", handlers.Course.Get)
		api.GET("/courses/faculty/:email",
			middleware.RequireRole(model.RoleFaculty, model.RoleAdmin),
			handlers.Course.ListByFaculty,
		)

		api.POST("/enrollment-requests", handlers.Enrollment.Submit)
		api.GET("/enrollment-requests/:email", handlers.Enrollment.ListByEmail)
		api.POST("/enrollments", handlers.Enrollment.AddMembership)
		api.GET("/enrollments/:email", handlers.Enrollment.ListMemberships)
		api.PATCH("/enrollments/:email/:course_id/paid", handlers.Enrollment.MarkPaid)

		api.GET("/notifications", handlers.Notification.List)
		api.PATCH("/notifications/seen", handlers.Notification.MarkSeen)

		api.GET("/notices", handlers.Notice.List)

		api.GET("/students/:email", handlers.Student.Get)

		api.POST("/media/upload", handlers.Media.Upload)
	}

	// ─── 3. WebSocket Group ────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(requireAuth, checkSession)
	{
		ws.GET("/stream", handlers.WS.Stream)
	}

	// ─── 4. Admin Group (JWT + RBAC) ───────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(requireAuth, checkSession, middleware.RequireRole(model.RoleAdmin))
	{
		adminAPI.GET("/enrollment-requests", handlers.Enrollment.ListPending)
		adminAPI.PATCH("/enrollment-requests/:email/:course_id", handlers.Enrollment.Decide)

		adminAPI.GET("/users", handlers.User.List)
		adminAPI.POST("/users", handlers.User.Create)
		adminAPI.PATCH("/users/:id/role", handlers.User.UpdateRole)
		adminAPI.DELETE("/users/:id", handlers.User.Delete)

		adminAPI.GET("/students", handlers.Student.List)
		adminAPI.POST("/students", handlers.Student.Create)
		adminAPI.PATCH("/students/:id", handlers.Student.Update)
		adminAPI.DELETE("/students/:id", handlers.Student.Delete)

		adminAPI.POST("/courses", handlers.Course.Create)
		adminAPI.PATCH("/courses/:id", handlers.Course.Update)
		adminAPI.DELETE("/courses/:id", handlers.Course.Delete)

		adminAPI.POST("/notices", handlers.Notice.Create)
		adminAPI.PATCH("/notices/:id", handlers.Notice.Update)
		adminAPI.DELETE("/notices/:id", handlers.Notice.Delete)
	}

	return router
}
