package router

import (
	"log/slog"
	"time"

	"github.com/applyhub/applyhub/internal/handlers"
	"github.com/applyhub/applyhub/internal/middleware"
	"github.com/applyhub/applyhub/internal/ratelimit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps every request body.
const MaxBodyBytes = 1 << 20

type Options struct {
	AllowedOrigins []string
	Release        bool
	Logger         *slog.Logger
	ApplyLimiter   ratelimit.Limiter
	Authenticator  middleware.Authenticator
}

func NewRouter(opts Options, h *handlers.Handler, hub *handlers.Hub) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if opts.Release {
		r.Use(middleware.RequestLogger(opts.Logger))
	} else {
		r.Use(gin.Logger())
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.BodyLimit(MaxBodyBytes))

	admin := middleware.AdminAuth(opts.Authenticator)

	submitChain := []gin.HandlerFunc{}
	if opts.ApplyLimiter != nil {
		submitChain = append(submitChain, middleware.RateLimit(opts.ApplyLimiter, opts.Logger))
	}
	submitChain = append(submitChain, h.SubmitApplication)

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		courses := api.Group("/courses")
		{
			courses.GET("", h.ListCourses)
			courses.GET("/:id", h.GetCourse)
			courses.POST("", admin, h.CreateCourse)
			courses.PATCH("/:id", admin, h.UpdateCourse)
			courses.DELETE("/:id", admin, h.DeleteCourse)
		}

		applications := api.Group("/applications")
		{
			applications.POST("", submitChain...)
			applications.GET("", admin, h.ListApplications)
			applications.GET("/:id", admin, h.GetApplication)
			applications.PATCH("/:id", admin, h.PatchApplication)
			applications.DELETE("/:id", admin, h.DeleteApplication)
		}

		drafts := api.Group("/drafts")
		{
			drafts.GET("/:key", h.GetDraft)
			drafts.PUT("/:key", h.PutDraft)
			drafts.DELETE("/:key", h.DeleteDraft)
		}

		api.POST("/admin/login", h.Login)
		api.POST("/admin/logout", h.Logout)

		adminGroup := api.Group("/admin", admin)
		{
			adminGroup.GET("/me", h.Me)
			adminGroup.GET("/ws", hub.WebSocket)

			adminGroup.GET("/applications", h.FetchApplications)
			adminGroup.POST("/applications/:id/review", h.ReviewApplication)
			adminGroup.GET("/applications/:id/notifications", h.ListNotifications)

			adminGroup.GET("/courses", h.ListCourses)

			adminGroup.GET("/emails", h.ListEmails)
			adminGroup.POST("/emails", h.CreateEmail)
			adminGroup.GET("/emails/:id", h.GetEmail)
			adminGroup.PUT("/emails/:id", h.UpdateEmail)
			adminGroup.DELETE("/emails/:id", h.DeleteEmail)
		}
	}

	return r
}
