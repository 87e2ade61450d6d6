package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"school_equipment_portal/app"
	"school_equipment_portal/db"
)

type RepairController struct{ *Srv }

func NewRepairController(s *Srv) *RepairController { return &RepairController{Srv: s} }

type reportDamageInput struct {
	EquipmentID uint   `json:"equipment_id" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// POST /equipment/:id/report-damage
func (pc *RepairController) ReportDamage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid equipment id"})
		return
	}
	uid, okUser := app.CurrentUserID(c)
	if !okUser {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	var in reportDamageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.EquipmentID != id {
		c.JSON(http.StatusBadRequest, app.H{"error": "equipment id in url and body do not match"})
		return
	}

	rep, err := pc.Repo.CreateRepair(c.Request.Context(), id, uid, in.Description)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "equipment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rep)
}

// GET /repairs?skip=&limit= (admin)
func (pc *RepairController) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	reps, err := pc.Repo.ListRepairs(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reps)
}

// POST /repairs/:id/complete (admin)
func (pc *RepairController) Complete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid repair id"})
		return
	}
	rep, err := pc.Repo.CompleteRepair(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) || errors.Is(err, db.ErrNotPending) {
			c.JSON(http.StatusNotFound, app.H{"error": "repair report not found or not pending"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rep)
}
