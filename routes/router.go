package routes

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chirp/chirp/config"
	"github.com/chirp/chirp/controllers"
	"github.com/chirp/chirp/middleware"
	"github.com/chirp/chirp/store"
	"github.com/chirp/chirp/utils"
	"github.com/chirp/chirp/views"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) (*gin.Engine, error) {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	verifier, err := utils.NewCredentialVerifier(cfg.PasswordScheme)
	if err != nil {
		return nil, err
	}
	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	// Access log and panic recovery go to their own rolling file
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(ginzap.Ginzap(gl, time.RFC3339, true))
		r.Use(ginzap.RecoveryWithZap(gl, true))
	} else {
		utils.Sugar.Warnw("gin access log unavailable, falling back to default recovery", "path", cfg.GinPath, "error", err)
		r.Use(gin.Recovery())
	}
	r.SetHTMLTemplate(tmpl)
	r.Use(middleware.LoadSession())

	st := store.New(db)
	authController := controllers.NewAuthController(st, verifier)
	postController := controllers.NewPostController(st, cfg.PageSize, cfg.MaxPostLength)
	userController := controllers.NewUserController(st, cfg.PageSize)
	statsController := controllers.NewStatsController(st)

	r.GET("/", middleware.LoginRequired("Please log in to view the feed"), postController.Index)
	r.GET("/register", authController.RegisterPage)
	r.POST("/register", authController.Register)
	r.GET("/login", authController.LoginPage)
	r.POST("/login", authController.Login)
	r.POST("/logout", authController.Logout)
	r.POST("/make_post", middleware.LoginRequired("You need to login first to make a post"), postController.MakePost)
	r.POST("/like/:post_id", middleware.LoginRequired("You need to login first to like a post"), postController.Like)
	r.GET("/user/:user_id", userController.Profile)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		// credentials cannot be combined with a wildcard origin
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	api := r.Group("/api/v1")
	api.Use(cors.New(corsCfg))
	// preflight requests are answered by the cors middleware before this handler runs
	api.OPTIONS("/*path", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })
	api.GET("/posts", middleware.APIAuthRequired(), postController.APIFeed)
	api.GET("/users/:id", userController.APIGetUser)
	api.GET("/users/:id/posts", userController.APIUserPosts)
	api.GET("/stats", statsController.GetStats)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		utils.NotFound(ctx, "Page not found")
	})

	return r, nil
}
