package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"school_equipment_portal/app"
	"school_equipment_portal/db"
)

type EquipmentController struct{ *Srv }

func NewEquipmentController(s *Srv) *EquipmentController { return &EquipmentController{Srv: s} }

type equipmentInput struct {
	Name          string `json:"name" binding:"required"`
	Category      string `json:"category" binding:"required"`
	Condition     string `json:"condition" binding:"required"`
	TotalQuantity int    `json:"total_quantity" binding:"gte=0"`
	Status        string `json:"status" binding:"omitempty,oneof=available on_loan under_repair"`
}

// POST /equipment (admin)
func (ec *EquipmentController) Create(c *gin.Context) {
	var in equipmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	eq, err := ec.Repo.CreateEquipment(c.Request.Context(), db.EquipmentInput{
		Name:          in.Name,
		Category:      in.Category,
		Condition:     in.Condition,
		TotalQuantity: in.TotalQuantity,
		Status:        in.Status,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, eq)
}

// GET /equipment?skip=&limit= (public)
func (ec *EquipmentController) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	items, err := ec.Repo.ListEquipment(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GET /equipment/:id (public)
func (ec *EquipmentController) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid equipment id"})
		return
	}
	eq, err := ec.Repo.FindEquipmentByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "equipment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, eq)
}

// PUT /equipment/:id (admin)
func (ec *EquipmentController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid equipment id"})
		return
	}
	var in equipmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	eq, err := ec.Repo.UpdateEquipment(c.Request.Context(), id, db.EquipmentInput{
		Name:          in.Name,
		Category:      in.Category,
		Condition:     in.Condition,
		TotalQuantity: in.TotalQuantity,
		Status:        in.Status,
	})
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "equipment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, eq)
}

// DELETE /equipment/:id (admin)
func (ec *EquipmentController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid equipment id"})
		return
	}
	if err := ec.Repo.DeleteEquipment(c.Request.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "equipment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "equipment deleted successfully"})
}
