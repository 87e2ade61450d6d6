package main

import (
	"context"

	"go.uber.org/zap"

	"school_equipment_portal/app"
	"school_equipment_portal/config"
	"school_equipment_portal/db"
	"school_equipment_portal/routes"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(r, application)

	app.BootstrapFirstAdmin(context.Background(), application.Config, db.NewRepo(application.DB), application.Log)

	addr := ":" + application.Config.Port
	application.Log.Info("listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		application.Log.Fatal("server", zap.Error(err))
	}
}
