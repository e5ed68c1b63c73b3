package handlers

import (
	"backend/models"
	"backend/services"
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
	"gorm.io/gorm"
)

// addLabel adds text to an image at the specified position
func addLabel(img *image.RGBA, x, y int, label string) {
	col := color.RGBA{0, 0, 0, 255}
	face := inconsolata.Regular8x16

	point := fixed.Point26_6{
		X: fixed.Int26_6(x * 64),
		Y: fixed.Int26_6(y * 64),
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  point,
	}
	d.DrawString(label)
}

// addLabelBold adds bold text for field labels
func addLabelBold(img *image.RGBA, x, y int, label string) {
	col := color.RGBA{30, 30, 30, 255}
	face := inconsolata.Bold8x16

	point := fixed.Point26_6{
		X: fixed.Int26_6(x * 64),
		Y: fixed.Int26_6(y * 64),
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  point,
	}
	d.DrawString(label)
}

// GeneratePaymentQR godoc
// @Summary      Generate payment QR code as JPEG
// @Description  Renders a scannable QR for a payment reference with the amount and status printed under it
// @Tags         payments
// @Produce      image/jpeg
// @Param        reference  path      string  true  "Payment reference"
// @Success      200  {file}    file  "JPEG image"
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/payments/qr/{reference} [get]
func GeneratePaymentQR(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		reference := c.Param("reference")
		if reference == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment reference is required"})
			return
		}

		var transaction models.PaymentTransactionGorm
		if err := gdb.Where("reference = ?", reference).First(&transaction).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}

		qrData := struct {
			Reference string `json:"reference"`
			Amount    int64  `json:"amount"`
			Status    string `json:"status"`
		}{
			Reference: transaction.Reference,
			Amount:    transaction.Amount,
			Status:    transaction.Status,
		}

		jsonData, err := json.Marshal(qrData)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to marshal payment data"})
			return
		}

		qr, err := qrcode.New(string(jsonData), qrcode.Medium)
		if err != nil {
			c.String(http.StatusInternalServerError, "QR code generation failed")
			return
		}

		qrImg := qr.Image(512)

		qrSize := qrImg.Bounds().Dy()
		padding := 30
		lineHeight := 28
		textAreaHeight := 4*lineHeight + padding
		totalHeight := qrSize + padding + textAreaHeight

		combinedImg := image.NewRGBA(image.Rect(0, 0, qrSize, totalHeight))
		draw.Draw(combinedImg, combinedImg.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

		qrRect := image.Rect(0, 0, qrSize, qrSize)
		draw.Draw(combinedImg, qrRect, qrImg, image.Point{}, draw.Src)

		separatorY := qrSize + padding/2
		for x := 0; x < qrSize; x++ {
			combinedImg.Set(x, separatorY, color.RGBA{200, 200, 200, 255})
		}

		startY := qrSize + padding + lineHeight
		xPos := 20

		kind := "Full payment"
		if transaction.Deposit {
			kind = "Deposit"
		}

		addLabelBold(combinedImg, xPos, startY, "Reference:")
		addLabel(combinedImg, xPos+120, startY, transaction.Reference)

		addLabelBold(combinedImg, xPos, startY+lineHeight, "Amount:")
		// The bitmap face only has ASCII glyphs, so spell out VND.
		addLabel(combinedImg, xPos+120, startY+lineHeight, services.FormatNumber(transaction.Amount)+" VND")

		addLabelBold(combinedImg, xPos, startY+2*lineHeight, "Type:")
		addLabel(combinedImg, xPos+120, startY+2*lineHeight, kind)

		addLabelBold(combinedImg, xPos, startY+3*lineHeight, "Status:")
		addLabel(combinedImg, xPos+120, startY+3*lineHeight, transaction.Status)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, combinedImg, &jpeg.Options{Quality: 90}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode image"})
			return
		}

		c.Header("Content-Type", "image/jpeg")
		c.Header("Content-Disposition", `inline; filename="`+transaction.Reference+`.jpg"`)
		c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
	}
}
