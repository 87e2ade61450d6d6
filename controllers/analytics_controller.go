package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"school_equipment_portal/app"
)

type AnalyticsController struct{ *Srv }

func NewAnalyticsController(s *Srv) *AnalyticsController { return &AnalyticsController{Srv: s} }

// GET /analytics/usage (admin): most requested equipment first.
func (ac *AnalyticsController) Usage(c *gin.Context) {
	rows, err := ac.Repo.UsageAnalytics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}
