package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/lojas7/produtos/pkg/ctx"
	"github.com/lojas7/produtos/pkg/database"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Check reports 200 while the cache store answers a ping, 503 otherwise.
func (hc *HealthController) Check(c *ctx.Context) {
	if err := database.Ping(c.Context(), hc.db); err != nil {
		c.Logger().Warn("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
