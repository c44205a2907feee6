package services

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"device-hub/entities"

	"github.com/jung-kurt/gofpdf"
)

var (
	reportColumns = []string{"ID", "Device ID", "Reading Date", "Value"}
	reportWidths  = []float64{50, 100, 250, 100}
)

// BuildReadingsReport renders a PDF with one row per reading, in the order
// given. Callers pass readings ordered by id ascending.
func BuildReadingsReport(readings []entities.DeviceReading) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 24, "Device Readings Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 20, "Generated on: "+time.Now().Format("2006-01-02 15:04:05"), "", 1, "L", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	for i, header := range reportColumns {
		pdf.CellFormat(reportWidths[i], 20, header, "", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 12)
	for _, reading := range readings {
		row := []string{
			strconv.FormatUint(uint64(reading.ID), 10),
			strconv.FormatUint(uint64(reading.DeviceID), 10),
			reading.ReadingDate.Format(time.RFC3339),
			strconv.FormatFloat(reading.Value, 'f', -1, 64),
		}
		for i, cell := range row {
			pdf.CellFormat(reportWidths[i], 20, cell, "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering readings report: %w", err)
	}
	return buf.Bytes(), nil
}
