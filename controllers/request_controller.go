package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"school_equipment_portal/app"
	"school_equipment_portal/db"
	"school_equipment_portal/models"
)

type RequestController struct{ *Srv }

func NewRequestController(s *Srv) *RequestController { return &RequestController{Srv: s} }

type createRequestInput struct {
	EquipmentID        uint   `json:"equipment_id" binding:"required"`
	BorrowDate         string `json:"borrow_date" binding:"required,datetime=2006-01-02"`
	ExpectedReturnDate string `json:"expected_return_date" binding:"required,datetime=2006-01-02"`
}

// POST /requests
func (rc *RequestController) Create(c *gin.Context) {
	uid, ok := app.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in createRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	borrow, _ := parseDate(in.BorrowDate)
	expected, _ := parseDate(in.ExpectedReturnDate)

	req, err := rc.Repo.CreateRequest(c.Request.Context(), uid, in.EquipmentID, borrow, expected)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) || errors.Is(err, db.ErrUnavailable) {
			c.JSON(http.StatusBadRequest, app.H{"error": "equipment not available or not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, req)
}

// GET /requests/my
func (rc *RequestController) My(c *gin.Context) {
	uid, ok := app.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	reqs, err := rc.Repo.ListRequestsByUser(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// GET /requests/pending (admin)
func (rc *RequestController) Pending(c *gin.Context) {
	reqs, err := rc.Repo.ListRequestsByStatus(c.Request.Context(), models.RequestPending)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reqs)
}

type approveInput struct {
	// The admin sets the official return date on approval.
	ExpectedReturnDate string `json:"expected_return_date" binding:"required,datetime=2006-01-02"`
}

// POST /requests/:id/approve (admin)
func (rc *RequestController) Approve(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid request id"})
		return
	}
	adminID, _ := app.CurrentUserID(c)

	var in approveInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	expected, _ := parseDate(in.ExpectedReturnDate)

	req, err := rc.Repo.ApproveRequest(c.Request.Context(), id, adminID, expected)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) || errors.Is(err, db.ErrNotPending) || errors.Is(err, db.ErrUnavailable) {
			c.JSON(http.StatusNotFound, app.H{"error": "request not found, not pending, or equipment unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, req)
}

// POST /requests/:id/reject (admin)
func (rc *RequestController) Reject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid request id"})
		return
	}
	adminID, _ := app.CurrentUserID(c)

	req, err := rc.Repo.RejectRequest(c.Request.Context(), id, adminID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) || errors.Is(err, db.ErrNotPending) {
			c.JSON(http.StatusNotFound, app.H{"error": "request not found or not pending"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, req)
}

// POST /requests/:id/return, allowed for an admin or the user who
// borrowed the item.
func (rc *RequestController) Return(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid request id"})
		return
	}
	uid, _ := app.CurrentUserID(c)

	req, err := rc.Repo.FindRequestByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": "request not found"})
		return
	}
	if app.CurrentRole(c) != models.RoleAdmin && req.UserID != uid {
		c.JSON(http.StatusForbidden, app.H{"error": "not authorized to return this item"})
		return
	}

	updated, err := rc.Repo.ReturnRequest(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotApproved) {
			c.JSON(http.StatusBadRequest, app.H{"error": "request not in 'approved' state"})
			return
		}
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "equipment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GET /requests/overdue (admin)
func (rc *RequestController) Overdue(c *gin.Context) {
	reqs, err := rc.Repo.ListRequestsByStatus(c.Request.Context(), models.RequestOverdue)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// POST /requests/check-overdue (admin): the manual sweep.
func (rc *RequestController) CheckOverdue(c *gin.Context) {
	flipped, err := rc.Repo.CheckOverdue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	rc.Log.Info("overdue sweep", zap.Int("flipped", len(flipped)))
	c.JSON(http.StatusOK, flipped)
}
