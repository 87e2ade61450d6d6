package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv pulls a .env file into the process environment when one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
}

type Config struct {
	Env         string
	Port        string
	DatabaseURL string // postgres DSN; empty means local sqlite
	SQLitePath  string
	RedisAddr   string
	RedisPwd    string
	JWTSecret   string
	TokenTTL    time.Duration
	WebOrigin   string

	// Optional first-admin bootstrap credentials.
	AdminUsername string
	AdminPassword string
}

func Load() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}

	ttl := 30 * time.Minute
	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = time.Duration(n) * time.Minute
		}
	}

	return Config{
		Env:           get("APP_ENV", "development"),
		Port:          get("PORT", "8000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    get("DB_PATH", "equipment.db"),
		RedisAddr:     get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:      os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     get("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:      ttl,
		WebOrigin:     get("WEB_ORIGIN", "http://localhost:3000"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}
