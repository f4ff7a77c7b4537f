package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"heavyrent-backend/internal/service"
)

type createRentalRequest struct {
	MachineID uint      `json:"machineId" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required,gtefield=StartDate"`
}

// CreateRental handles POST /rentals.
func (h *Handler) CreateRental(c *gin.Context) {
	var req createRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, ok := caller(c)
	if !ok {
		return
	}

	rental, err := h.rentals.Create(c.Request.Context(), service.CreateRentalInput{
		MachineID: req.MachineID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rental)
}

// MyRentals handles GET /rentals/mine.
func (h *Handler) MyRentals(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	rentals, err := h.rentals.FindByUser(c.Request.Context(), id.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rentals)
}
