package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"school_equipment_portal/app"
	"school_equipment_portal/controllers"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	uc := controllers.NewUserController(s)
	ec := controllers.NewEquipmentController(s)
	rc := controllers.NewRequestController(s)
	pc := controllers.NewRepairController(s)
	ac := controllers.NewAnalyticsController(s)

	authMW := app.AuthRequired(a.JWT, a.Tokens, s.Repo)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	r.GET("/", func(c *app.Ctx) {
		c.JSON(http.StatusOK, app.H{"message": "Welcome to the School Equipment Lending Portal API!"})
	})

	// ------------------------------
	// Auth (public)
	// ------------------------------
	r.POST("/register", uc.Register)
	r.POST("/token", uc.Token)

	// ------------------------------
	// Equipment catalog (public reads)
	// ------------------------------
	r.GET("/equipment", ec.List)
	r.GET("/equipment/:id", ec.Get)

	// ------------------------------
	// Logged-in users
	// ------------------------------
	user := r.Group("", authMW, seenMW)
	{
		user.GET("/users/me", uc.Me)
		user.POST("/logout", uc.Logout)

		user.POST("/requests", rc.Create)
		user.GET("/requests/my", rc.My)
		user.POST("/requests/:id/return", rc.Return) // admin or owner, checked in handler
		user.POST("/equipment/:id/report-damage", pc.ReportDamage)
	}

	// ------------------------------
	// Admin only
	// ------------------------------
	admin := r.Group("", authMW, adminMW)
	{
		admin.POST("/equipment", ec.Create)
		admin.PUT("/equipment/:id", ec.Update)
		admin.DELETE("/equipment/:id", ec.Delete)

		admin.GET("/requests/pending", rc.Pending)
		admin.POST("/requests/:id/approve", rc.Approve)
		admin.POST("/requests/:id/reject", rc.Reject)
		admin.GET("/requests/overdue", rc.Overdue)
		admin.POST("/requests/check-overdue", rc.CheckOverdue)

		admin.GET("/repairs", pc.List)
		admin.POST("/repairs/:id/complete", pc.Complete)

		admin.GET("/analytics/usage", ac.Usage)

		admin.GET("/users", uc.ListUsers)
		admin.GET("/users/:id/requests", uc.UserRequests)
		admin.DELETE("/users/:id", uc.DeleteUser)
	}
}
