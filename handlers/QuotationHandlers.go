package handlers

import (
	"backend/models"
	"backend/services"
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func loadOrderQuotations(db *sql.DB, orderID int) ([]models.Quotation, error) {
	rows, err := db.Query(`
		SELECT q.id, q.order_id, q.price, q.acceptance_deadline, q.early_delivery_date,
		       q.deposit_rate, q.note, q.status, q.created_at,
		       g.id, g.customer, g.rating
		FROM quotations q
		JOIN garments g ON g.id = q.garment_id
		WHERE q.order_id = $1
		ORDER BY q.created_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotations []models.Quotation
	for rows.Next() {
		var q models.Quotation
		var acceptance, delivery sql.NullTime
		garment := &models.GarmentProfile{}
		err := rows.Scan(&q.ID, &q.OrderID, &q.Price, &acceptance, &delivery,
			&q.DepositRate, &q.Note, &q.Status, &q.CreatedAt,
			&garment.ID, &garment.Customer, &garment.Rating)
		if err != nil {
			return nil, err
		}
		if acceptance.Valid {
			q.AcceptanceDeadline = &acceptance.Time
		}
		if delivery.Valid {
			q.EarlyDeliveryDate = &delivery.Time
		}
		q.Garment = garment
		quotations = append(quotations, q)
	}
	return quotations, rows.Err()
}

// GetOrderQuotations godoc
// @Summary      List quotations for an order
// @Description  Returns the order's quotations ranked by the requested sort keys. sort is a comma list (price,validUntil,rating,estDelivery); dir is key:asc|desc pairs. Without sort keys the submission order is kept.
// @Tags         quotations
// @Produce      json
// @Param        id    path      int     true   "Order ID"
// @Param        sort  query     string  false  "Comma-separated sort keys in priority order"
// @Param        dir   query     string  false  "Per-key directions, e.g. price:asc,rating:desc"
// @Success      200  {array}   models.Quotation
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/orders/{id}/quotations [get]
func GetOrderQuotations(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
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

		if ranked == nil {
			ranked = []models.Quotation{}
		}
		c.JSON(http.StatusOK, ranked)
	}
}

// PickQuotation godoc
// @Summary      Pick a quotation
// @Description  Accepts one quotation for its order, rejects the rest, and moves the order to awaiting payment
// @Tags         quotations
// @Produce      json
// @Param        Authorization  header  string  true  "Session token"
// @Param        id  path      int  true  "Quotation ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /api/quotations/{id}/pick [post]
func PickQuotation(db *sql.DB, fcm *services.FCMService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session-id header is required"})
			return
		}

		session, userName, err := GetSessionDetails(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session", "details": err.Error()})
			return
		}

		quotationID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quotation ID"})
			return
		}

		var orderID, garmentID int
		var status string
		err = db.QueryRow(`SELECT order_id, garment_id, status FROM quotations WHERE id = $1`, quotationID).
			Scan(&orderID, &garmentID, &status)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quotation not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if status != "pending" {
			c.JSON(http.StatusConflict, gin.H{"error": "Quotation is no longer open"})
			return
		}

		tx, err := db.Begin()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer tx.Rollback()

		if _, err := tx.Exec(`UPDATE quotations SET status = 'rejected' WHERE order_id = $1 AND id <> $2 AND status = 'pending'`, orderID, quotationID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if _, err := tx.Exec(`UPDATE quotations SET status = 'accepted' WHERE id = $1`, quotationID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if _, err := tx.Exec(`UPDATE orders SET status = 'awaiting_payment' WHERE id = $1`, orderID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := tx.Commit(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Quotation picked"})

		if fcm != nil {
			go func() {
				_ = fcm.NotifyQuotationPicked(c.Copy(), strconv.Itoa(garmentID), strconv.Itoa(orderID))
			}()
		}

		logActivity(db, session, userName, "Quotation", "Pick",
			"Pick quotation "+strconv.Itoa(quotationID)+" for order "+strconv.Itoa(orderID))
	}
}
