package httpHandler

import (
	"net/http"

	"device-hub/services"
	"device-hub/usecases"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	useCase *usecases.DeviceUseCase
}

func NewReportHandler(useCase *usecases.DeviceUseCase) *ReportHandler {
	return &ReportHandler{useCase: useCase}
}

// ReadingsReport handles GET /api/v1/devices/:id/readings/report and
// returns a PDF of the device's readings, one page of the reading default
// size, ordered by id ascending.
func (h *ReportHandler) ReadingsReport(c *gin.Context) {
	deviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	readings, err := h.useCase.ListReadings(deviceID, Caller(c).ID, 0, usecases.DefaultReadingPageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	pdf, err := services.BuildReadingsReport(readings)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="device_readings.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
