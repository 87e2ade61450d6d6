package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"school_equipment_portal/auth"
	"school_equipment_portal/db"
	"school_equipment_portal/models"
	"school_equipment_portal/session"
)

// Context keys set by AuthRequired.
const (
	CtxUserID   = "userID"
	CtxUsername = "username"
	CtxRole     = "role"
	CtxTokenJTI = "tokenJTI"
)

// AuthRequired validates the bearer token, requires its jti to still be
// live in the token registry, and confirms the user still exists before
// letting the handler run.
func AuthRequired(jwtSvc *auth.JWTService, tokens *session.TokenStore, repo *db.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		claims, err := jwtSvc.Parse(raw)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "could not validate credentials"})
			return
		}
		if _, err := tokens.Get(c.Request.Context(), claims.ID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "token revoked or expired"})
			return
		}

		u, err := repo.FindUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			_ = tokens.Revoke(c.Request.Context(), claims.ID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}

		c.Set(CtxUserID, u.ID)
		c.Set(CtxUsername, u.Username)
		c.Set(CtxRole, u.Role)
		c.Set(CtxTokenJTI, claims.ID)
		c.Next()
	}
}

// AdminOnly 403s every caller whose role is not admin. Must run after
// AuthRequired.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(CtxRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "operation not permitted: requires admin role"})
			return
		}
		c.Next()
	}
}

// CurrentUserID reads the id AuthRequired stashed in the context.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func CurrentRole(c *gin.Context) string {
	v, _ := c.Get(CtxRole)
	role, _ := v.(string)
	return role
}
