package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heavyrent-backend/internal/service"
)

type createMachineRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required,min=10"`
	PricePerDay *float64 `json:"pricePerDay" binding:"required,gte=0"`
}

// CreateMachine handles POST /machines.
func (h *Handler) CreateMachine(c *gin.Context) {
	var req createMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, ok := caller(c)
	if !ok {
		return
	}

	machine, err := h.machines.Create(c.Request.Context(), service.CreateMachineInput{
		Name:        req.Name,
		Description: req.Description,
		PricePerDay: *req.PricePerDay,
	}, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, machine)
}

// ListMachines handles GET /machines.
func (h *Handler) ListMachines(c *gin.Context) {
	machines, err := h.machines.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, machines)
}
