package app

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"school_equipment_portal/auth"
	"school_equipment_portal/config"
	"school_equipment_portal/db"
	"school_equipment_portal/session"
)

// Aliases so handlers can stay short.
type Ctx = gin.Context
type H = gin.H

// App aggregates every dependency the handlers need.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Log    *zap.Logger
	JWT    *auth.JWTService
	Tokens *session.TokenStore
	Config config.Config
}

func MustNew() *App {
	cfg := config.Load()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	dbConn, err := db.Connect(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	logger.Info("database connected")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("redis", zap.Error(err))
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))
	useCORS(r, cfg.WebOrigin)

	return &App{
		Router: r,
		DB:     dbConn,
		RDB:    rdb,
		Log:    logger,
		JWT:    auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL),
		Tokens: session.NewTokenStore(rdb, cfg.TokenTTL),
		Config: cfg,
	}
}

func (a *App) Close() {
	_ = a.RDB.Close()
	_ = a.Log.Sync()
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
