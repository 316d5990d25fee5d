// Package server assembles the HTTP API: middleware, the public routes and
// every feature package mounted under /api/v1.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/admin"
	"github.com/ama-impact/ama-impact/pkg/impact/apikeys"
	"github.com/ama-impact/ama-impact/pkg/impact/audit"
	"github.com/ama-impact/ama-impact/pkg/impact/auth"
	"github.com/ama-impact/ama-impact/pkg/impact/beneficiaries"
	"github.com/ama-impact/ama-impact/pkg/impact/casegroups"
	"github.com/ama-impact/ama-impact/pkg/impact/config"
	"github.com/ama-impact/ama-impact/pkg/impact/contracts"
	"github.com/ama-impact/ama-impact/pkg/impact/dashboard"
	"github.com/ama-impact/ama-impact/pkg/impact/database"
	"github.com/ama-impact/ama-impact/pkg/impact/departments"
	"github.com/ama-impact/ama-impact/pkg/impact/errtrack"
	"github.com/ama-impact/ama-impact/pkg/impact/importexport"
	"github.com/ama-impact/ama-impact/pkg/impact/lawfirms"
	"github.com/ama-impact/ama-impact/pkg/impact/logging"
	"github.com/ama-impact/ama-impact/pkg/impact/milestones"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/ama-impact/ama-impact/pkg/impact/notifications"
	"github.com/ama-impact/ama-impact/pkg/impact/petitions"
	"github.com/ama-impact/ama-impact/pkg/impact/reports"
	"github.com/ama-impact/ama-impact/pkg/impact/rfes"
	"github.com/ama-impact/ama-impact/pkg/impact/todos"
	"github.com/ama-impact/ama-impact/pkg/impact/users"
	"github.com/ama-impact/ama-impact/pkg/impact/visatypes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/ama-impact/ama-impact/pkg/impact/docs"
)

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowOrigins = cfg.CORSOrigins
	c.AllowCredentials = true
	c.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", logging.RequestIDHeader}
	c.ExposeHeaders = []string{logging.RequestIDHeader, "Content-Disposition"}
	c.MaxAge = 12 * time.Hour
	return c
}

// Health reports whether the database answers.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.Ping(ctx, db); err != nil {
			slog.Default().Warn("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "unavailable"})
			return
		}
		c.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
	}
}

// NewRouter builds the gin engine serving the whole API.
func NewRouter(cfg *config.Config, db *gorm.DB, logger *slog.Logger) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logging.RequestID(), logging.Middleware(logger), errtrack.Recovery(logger))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(corsConfig(cfg)))
	}

	r.GET("/health", Health(db))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// JWT or API key, then the actor and its scope.
	authn := []gin.HandlerFunc{apikeys.CombinedAuthMiddleware(db), access.Middleware(db)}

	auth.NewHandler(db).RegisterRoutes(api.Group("/auth"), authn...)

	// API keys are managed with a login session only.
	apikeys.NewHandler(db).RegisterRoutes(api.Group("", auth.AuthMiddleware(), access.Middleware(db)))

	protected := api.Group("", authn...)
	users.NewHandler(db).RegisterRoutes(protected)
	contracts.NewHandler(db).RegisterRoutes(protected)
	departments.NewHandler(db).RegisterRoutes(protected)
	beneficiaries.NewHandler(db).RegisterRoutes(protected)
	lawfirms.NewHandler(db).RegisterRoutes(protected)
	visatypes.NewHandler(db).RegisterRoutes(protected)
	casegroups.NewHandler(db).RegisterRoutes(protected)
	petitions.NewHandler(db).RegisterRoutes(protected)
	milestones.NewHandler(db).RegisterRoutes(protected)
	rfes.NewHandler(db).RegisterRoutes(protected)
	todos.NewHandler(db).RegisterRoutes(protected)
	dashboard.NewHandler(db).RegisterRoutes(protected)
	reports.NewHandler(db).RegisterRoutes(protected)

	notificationHandler := notifications.NewHandler(db)
	notificationHandler.RegisterRoutes(protected)

	adminOnly := protected.Group("", access.RequireRoles(models.RoleAdmin))
	audit.NewHandler(db).RegisterRoutes(adminOnly)

	adminGroup := adminOnly.Group("/admin")
	notificationHandler.RegisterAdminRoutes(adminGroup)
	importexport.NewHandler(db).RegisterRoutes(adminGroup)
	admin.NewHandler(db).RegisterRoutes(adminGroup)

	return r
}

// Run serves the API on cfg.Port until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, cfg *config.Config, db *gorm.DB, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, db, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting AMA-IMPACT API", "addr", srv.Addr, "env", cfg.AppEnv)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
