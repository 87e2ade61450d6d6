package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"school_equipment_portal/db"
)

// TouchLastSeen bumps the caller's last_seen_at at most once per throttle
// window, using a redis SetNX as the gate. Errors never block the request.
func TouchLastSeen(repo *db.Repo, rdb *redis.Client, throttle time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := CurrentUserID(c)
		if !ok {
			c.Next()
			return
		}

		key := fmt.Sprintf("user:lastseen:%d", uid)
		if ok, _ := rdb.SetNX(c, key, "1", throttle).Result(); ok {
			_ = repo.TouchUserSeen(c, uid)
		}
		c.Next()
	}
}
