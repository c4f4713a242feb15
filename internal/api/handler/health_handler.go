package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"sune-tv/internal/config"
	infraES "sune-tv/internal/infra/elasticsearch"
	infraRedis "sune-tv/internal/infra/redis"
	"sune-tv/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	db  *gorm.DB
	app config.AppConfig
}

func NewHealthHandler(db *gorm.DB, app config.AppConfig) *HealthHandler {
	return &HealthHandler{db: db, app: app}
}

// Health GET /healthz
// The store must answer. Redis and the search index are reported but optional.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	dbStatus := "up"
	if err := h.pingDB(ctx); err != nil {
		logger.Warn("Health check: database unreachable", zap.Error(err))
		dbStatus = "down"
		status, code = "unavailable", http.StatusServiceUnavailable
	}

	redisStatus := "up"
	if err := infraRedis.Ping(ctx); err != nil {
		if errors.Is(err, infraRedis.ErrNotInitialized) {
			redisStatus = "disabled"
		} else {
			logger.Warn("Health check: redis unreachable", zap.Error(err))
			redisStatus = "down"
			if code == http.StatusOK {
				status = "degraded"
			}
		}
	}

	searchStatus := "disabled"
	if infraES.Enabled() {
		searchStatus = "up"
		if err := infraES.Ping(ctx); err != nil {
			logger.Warn("Health check: elasticsearch unreachable", zap.Error(err))
			searchStatus = "down"
			if code == http.StatusOK {
				status = "degraded"
			}
		}
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   h.app.Name,
		"version":   h.app.Version,
		"mode":      h.app.Mode,
		"components": gin.H{
			"database":      dbStatus,
			"redis":         redisStatus,
			"elasticsearch": searchStatus,
		},
	})
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Root GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Welcome to %s API", h.app.Name),
		"project": h.app.Name,
		"version": h.app.Version,
		"mode":    h.app.Mode,
		"api":     h.app.BasePath,
		"docs":    "/swagger/index.html",
		"health":  "/healthz",
	})
}
