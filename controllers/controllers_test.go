package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"school_equipment_portal/app"
	"school_equipment_portal/db"
	"school_equipment_portal/models"
)

// identityFromHeaders stands in for the bearer-token middleware: tests
// declare who they are via X-User-ID / X-User-Role.
func identityFromHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader("X-User-ID"); id != "" {
			n, _ := strconv.Atoi(id)
			c.Set(app.CtxUserID, uint(n))
			c.Set(app.CtxRole, c.GetHeader("X-User-Role"))
		}
		c.Next()
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, *Srv) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	s := &Srv{Repo: db.NewRepo(conn), Log: zap.NewNop()}
	uc := NewUserController(s)
	ec := NewEquipmentController(s)
	rc := NewRequestController(s)
	pc := NewRepairController(s)
	ac := NewAnalyticsController(s)

	r := gin.New()
	r.Use(identityFromHeaders())

	r.POST("/register", uc.Register)
	r.POST("/token", uc.Token)
	r.GET("/equipment", ec.List)
	r.GET("/equipment/:id", ec.Get)

	r.POST("/requests", rc.Create)
	r.GET("/requests/my", rc.My)
	r.POST("/requests/:id/return", rc.Return)
	r.POST("/equipment/:id/report-damage", pc.ReportDamage)

	admin := r.Group("", app.AdminOnly())
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
	}
	return r, s
}

type testUser struct {
	id   uint
	role string
}

func do(t *testing.T, r *gin.Engine, method, path string, as *testUser, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.Header.Set("X-User-ID", strconv.FormatUint(uint64(as.id), 10))
		req.Header.Set("X-User-Role", as.role)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doForm posts url-encoded form fields, the way a password-grant client does.
func doForm(t *testing.T, r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, username, role string) testUser {
	t.Helper()
	w := do(t, r, http.MethodPost, "/register", nil, gin.H{
		"username": username,
		"password": "pass1234",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var u models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	return testUser{id: u.ID, role: u.Role}
}
