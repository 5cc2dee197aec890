package server

import (
	"fmt"
	"net/http"

	"github.com/etnz/shopsight"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Orders"

// handleExport downloads the session's filtered view as a spreadsheet.
func (s *Server) handleExport(c *gin.Context) {
	view := s.sessions.session(c).view()

	f, err := ExportXLSX(view)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="orders.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		s.log.WithError(err).Error("spreadsheet export failed")
	}
}

// ExportXLSX builds a workbook with one row per order, using the CSV
// column set.
func ExportXLSX(ds *shopsight.Dataset) (*excelize.File, error) {
	f := excelize.NewFile()
	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	header := make([]any, len(shopsight.Header))
	for i, name := range shopsight.Header {
		header[i] = name
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, r := range ds.Records() {
		row := []any{
			r.ID,
			r.Time.Format("2006-01-02 15:04:05"),
			r.CustomerID,
			r.CustomerName,
			r.ProductName,
			r.Category,
			r.Quantity,
			r.CostPrice.AsFloat(),
			r.SellingPrice.AsFloat(),
			r.TotalDiscount.AsFloat(),
			r.TotalPrice.AsFloat(),
			r.CouponCode,
			r.PaymentMethod,
			r.City,
			r.Country,
			r.Fraud,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}
