package handlers

import (
	"backend/services"
	"backend/utils"
	"database/sql"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// ExportFabricPriceMatrix godoc
// @Summary      Export a factory's fabric price matrix as Excel
// @Description  One row per priced fabric, one column per size in canonical order
// @Tags         fabrics
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        garment_id  path      int  true  "Garment factory ID"
// @Success      200  {file}    file  "Excel workbook"
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/garments/{garment_id}/fabrics/export [get]
func ExportFabricPriceMatrix(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		garmentID, err := strconv.Atoi(c.Param("garment_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid garment ID"})
			return
		}

		ctx, cancel := utils.GetSlowQueryContext(c.Request.Context())
		defer cancel()

		rows, err := db.QueryContext(ctx, `
			SELECT f.name, s.name, s.size, fsp.price
			FROM fabric_size_prices fsp
			JOIN fabrics f ON f.id = fsp.fabric_id
			JOIN sizes s ON s.enum_name = fsp.size_enum_name
			WHERE fsp.garment_id = $1
			ORDER BY f.name`, garmentID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		// fabric -> variant name -> price, plus the union of variant columns.
		prices := make(map[string]map[string]int64)
		columnSet := make(map[string]string)
		var fabricOrder []string
		for rows.Next() {
			var fabricName, variantName, size string
			var price int64
			if err := rows.Scan(&fabricName, &variantName, &size, &price); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if _, ok := prices[fabricName]; !ok {
				prices[fabricName] = make(map[string]int64)
				fabricOrder = append(fabricOrder, fabricName)
			}
			prices[fabricName][variantName] = price
			columnSet[variantName] = size
		}

		columns := make([]string, 0, len(columnSet))
		for variant := range columnSet {
			columns = append(columns, variant)
		}
		sort.SliceStable(columns, func(i, j int) bool {
			si, sj := services.SizeOrderIndex(columnSet[columns[i]]), services.SizeOrderIndex(columnSet[columns[j]])
			if si != sj {
				return si < sj
			}
			return columns[i] < columns[j]
		})

		f := excelize.NewFile()
		sheet := "Fabric Prices"
		f.SetSheetName("Sheet1", sheet)

		headerStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
			Alignment: &excelize.Alignment{
				Horizontal: "center",
				Vertical:   "center",
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		f.SetCellValue(sheet, "A1", "Fabric")
		for i, variant := range columns {
			cell, _ := excelize.CoordinatesToCellName(i+2, 1)
			f.SetCellValue(sheet, cell, variant)
		}
		endHeader, _ := excelize.CoordinatesToCellName(len(columns)+1, 1)
		f.SetCellStyle(sheet, "A1", endHeader, headerStyle)

		for r, fabricName := range fabricOrder {
			nameCell, _ := excelize.CoordinatesToCellName(1, r+2)
			f.SetCellValue(sheet, nameCell, fabricName)
			for i, variant := range columns {
				cell, _ := excelize.CoordinatesToCellName(i+2, r+2)
				if price, ok := prices[fabricName][variant]; ok {
					f.SetCellValue(sheet, cell, services.FormatVND(price))
				}
			}
		}

		f.SetColWidth(sheet, "A", "A", 28)

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=fabric_prices_garment_%d.xlsx", garmentID))
		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write workbook"})
			return
		}
	}
}

// ExportQuotationComparisonPDF godoc
// @Summary      Export an order's quotation comparison as PDF
// @Description  Renders the quotations for an order in ranked order with the same sort parameters as the list endpoint
// @Tags         quotations
// @Produce      application/pdf
// @Param        id    path      int     true   "Order ID"
// @Param        sort  query     string  false  "Comma-separated sort keys in priority order"
// @Param        dir   query     string  false  "Per-key directions"
// @Success      200  {file}    file  "PDF document"
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/orders/{id}/quotations/export [get]
func ExportQuotationComparisonPDF(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		ctx, cancel := utils.GetSlowQueryContext(c.Request.Context())
		defer cancel()

		var schoolName, orderStatus string
		err = db.QueryRowContext(ctx, `SELECT school_name, status FROM orders WHERE id = $1`, orderID).
			Scan(&schoolName, &orderStatus)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		quotations, err := loadOrderQuotations(db, orderID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		keys := services.ParseSortKeys(c.Query("sort"))
		directions := services.ParseSortDirections(c.Query("dir"))
		ranked := services.RankQuotations(quotations, keys, directions)

		pdf := gofpdf.New("L", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetMargins(10, 10, 10)

		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(277, 10, "Quotation Comparison")
		pdf.Ln(10)

		pdf.SetFont("Arial", "", 10)
		pdf.Cell(138, 6, fmt.Sprintf("School: %s", schoolName))
		pdf.Cell(138, 6, fmt.Sprintf("Order Status: %s", titleCaser.String(orderStatus)))
		pdf.Ln(10)

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(12, 8, "#", "1", 0, "C", true, 0, "")
		pdf.CellFormat(60, 8, "Factory", "1", 0, "L", true, 0, "")
		pdf.CellFormat(40, 8, "Price", "1", 0, "R", true, 0, "")
		pdf.CellFormat(20, 8, "Rating", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 8, "Valid Until", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 8, "Est. Delivery", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 8, "Deposit %", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 8, "Status", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for i, q := range ranked {
			factory := ""
			rating := ""
			if q.Garment != nil {
				factory = q.Garment.Customer
				rating = fmt.Sprintf("%.1f", q.Garment.Rating)
			}
			validUntil := "-"
			if q.AcceptanceDeadline != nil {
				validUntil = q.AcceptanceDeadline.Format("02/01/2006")
			}
			delivery := "-"
			if q.EarlyDeliveryDate != nil {
				delivery = q.EarlyDeliveryDate.Format("02/01/2006")
			}

			pdf.CellFormat(12, 8, strconv.Itoa(i+1), "1", 0, "C", false, 0, "")
			pdf.CellFormat(60, 8, factory, "1", 0, "L", false, 0, "")
			// Core PDF fonts are latin-1 only, so spell out VND instead of the sign.
			pdf.CellFormat(40, 8, services.FormatNumber(q.Price)+" VND", "1", 0, "R", false, 0, "")
			pdf.CellFormat(20, 8, rating, "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 8, validUntil, "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 8, delivery, "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 8, fmt.Sprintf("%.0f", q.DepositRate), "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 8, titleCaser.String(q.Status), "1", 1, "C", false, 0, "")
		}

		pdf.SetY(-20)
		pdf.SetFont("Arial", "I", 8)
		pdf.Cell(277, 6, "Generated on: "+time.Now().Format("2006-01-02 15:04:05"))

		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=quotations_order_%d.pdf", orderID))
		if err := pdf.Output(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
			return
		}
	}
}
