// controllers/srv.go
package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"school_equipment_portal/app"
	"school_equipment_portal/auth"
	"school_equipment_portal/config"
	"school_equipment_portal/db"
	"school_equipment_portal/session"
)

// Srv bundles the dependencies every controller shares.
type Srv struct {
	Repo   *db.Repo
	JWT    *auth.JWTService
	Tokens *session.TokenStore
	Log    *zap.Logger
	Cfg    config.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:   db.NewRepo(a.DB),
		JWT:    a.JWT,
		Tokens: a.Tokens,
		Log:    a.Log,
		Cfg:    a.Config,
	}
}

// --- helpers ---

const dateLayout = "2006-01-02"

func paramID(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
