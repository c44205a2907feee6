package httpHandler

import (
	"net/http"
	"time"

	"device-hub/usecases"

	"github.com/gin-gonic/gin"
)

type ReadingHandler struct {
	useCase *usecases.DeviceUseCase
}

func NewReadingHandler(useCase *usecases.DeviceUseCase) *ReadingHandler {
	return &ReadingHandler{useCase: useCase}
}

type CreateReadingRequest struct {
	ReadingDate time.Time `json:"reading_date" binding:"required"`
	Value       *float64  `json:"value" binding:"required"`
}

// CreateReading handles POST /api/v1/devices/:id/readings. The device id
// comes from the path only; a device_id in the payload is ignored.
func (h *ReadingHandler) CreateReading(c *gin.Context) {
	deviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reading, err := h.useCase.CreateReading(deviceID, Caller(c).ID, req.ReadingDate, *req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": reading})
}

// ListReadings handles GET /api/v1/devices/:id/readings
func (h *ReadingHandler) ListReadings(c *gin.Context) {
	deviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	skip, limit := parsePage(c)

	readings, err := h.useCase.ListReadings(deviceID, Caller(c).ID, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": readings, "count": len(readings)})
}

// GetReading handles GET /api/v1/readings/:id
func (h *ReadingHandler) GetReading(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reading, err := h.useCase.GetReading(id, Caller(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": reading})
}

// UpdateReading handles PUT /api/v1/readings/:id
func (h *ReadingHandler) UpdateReading(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var update usecases.ReadingUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reading, err := h.useCase.UpdateReading(id, Caller(c).ID, update)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": reading})
}

// DeleteReading handles DELETE /api/v1/readings/:id
func (h *ReadingHandler) DeleteReading(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.useCase.DeleteReading(id, Caller(c).ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reading deleted"})
}
