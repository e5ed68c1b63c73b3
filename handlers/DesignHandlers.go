package handlers

import (
	"backend/models"
	"backend/services"
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetDesignRequests godoc
// @Summary      List design requests
// @Description  Lists schools' design requests, optionally filtered by status
// @Tags         design-requests
// @Produce      json
// @Param        status  query     string  false  "Status filter"
// @Success      200  {array}   models.DesignRequest
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/design-requests [get]
func GetDesignRequests(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.Query("status")

		query := `
			SELECT id, school_name, status, name, private, created_at
			FROM design_requests`
		args := []interface{}{}
		if status != "" {
			query += ` WHERE status = $1`
			args = append(args, status)
		}
		query += ` ORDER BY created_at DESC`

		rows, err := db.Query(query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		var requests []models.DesignRequest
		for rows.Next() {
			var r models.DesignRequest
			if err := rows.Scan(&r.ID, &r.SchoolName, &r.Status, &r.Name, &r.Private, &r.CreatedAt); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			requests = append(requests, r)
		}

		if requests == nil {
			requests = []models.DesignRequest{}
		}
		c.JSON(http.StatusOK, requests)
	}
}

func loadDesignQuotations(db *sql.DB, requestID int) ([]models.DesignQuotation, error) {
	rows, err := db.Query(`
		SELECT q.id, q.design_request_id, q.price, q.acceptance_deadline, q.early_delivery_date,
		       q.deposit_rate, q.note, q.status, q.created_at,
		       d.id, d.customer, d.rating
		FROM design_quotations q
		JOIN designers d ON d.id = q.designer_id
		WHERE q.design_request_id = $1
		ORDER BY q.created_at ASC`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotations []models.DesignQuotation
	for rows.Next() {
		var q models.DesignQuotation
		var acceptance, delivery sql.NullTime
		designer := &models.GarmentProfile{}
		err := rows.Scan(&q.ID, &q.DesignRequestID, &q.Price, &acceptance, &delivery,
			&q.DepositRate, &q.Note, &q.Status, &q.CreatedAt,
			&designer.ID, &designer.Customer, &designer.Rating)
		if err != nil {
			return nil, err
		}
		if acceptance.Valid {
			q.AcceptanceDeadline = &acceptance.Time
		}
		if delivery.Valid {
			q.EarlyDeliveryDate = &delivery.Time
		}
		q.Designer = designer
		quotations = append(quotations, q)
	}
	return quotations, rows.Err()
}

// GetDesignQuotations godoc
// @Summary      List design quotations for a request
// @Description  Returns designer packages ranked by the requested sort keys, same semantics as order quotations
// @Tags         design-requests
// @Produce      json
// @Param        id    path      int     true   "Design request ID"
// @Param        sort  query     string  false  "Comma-separated sort keys in priority order"
// @Param        dir   query     string  false  "Per-key directions, e.g. price:asc,rating:desc"
// @Success      200  {array}   models.DesignQuotation
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/design-requests/{id}/quotations [get]
func GetDesignQuotations(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid design request ID"})
			return
		}

		quotations, err := loadDesignQuotations(db, requestID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		keys := services.ParseSortKeys(c.Query("sort"))
		directions := services.ParseSortDirections(c.Query("dir"))
		ranked := services.RankDesignQuotations(quotations, keys, directions)

		if ranked == nil {
			ranked = []models.DesignQuotation{}
		}
		c.JSON(http.StatusOK, ranked)
	}
}

// PickDesignQuotation godoc
// @Summary      Pick a design quotation
// @Description  Accepts one designer package for its request, rejects the rest, and moves the request to awaiting payment
// @Tags         design-requests
// @Produce      json
// @Param        Authorization  header  string  true  "Session token"
// @Param        id  path      int  true  "Design quotation ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /api/design-quotations/{id}/pick [post]
func PickDesignQuotation(db *sql.DB, fcm *services.FCMService) gin.HandlerFunc {
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

		var requestID, designerID int
		var status string
		err = db.QueryRow(`SELECT design_request_id, designer_id, status FROM design_quotations WHERE id = $1`, quotationID).
			Scan(&requestID, &designerID, &status)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Design quotation not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if status != "pending" {
			c.JSON(http.StatusConflict, gin.H{"error": "Design quotation is no longer open"})
			return
		}

		tx, err := db.Begin()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer tx.Rollback()

		if _, err := tx.Exec(`UPDATE design_quotations SET status = 'rejected' WHERE design_request_id = $1 AND id <> $2 AND status = 'pending'`, requestID, quotationID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if _, err := tx.Exec(`UPDATE design_quotations SET status = 'accepted' WHERE id = $1`, quotationID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if _, err := tx.Exec(`UPDATE design_requests SET status = 'awaiting_payment' WHERE id = $1`, requestID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := tx.Commit(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Design quotation picked"})

		if fcm != nil {
			go func() {
				_ = fcm.NotifyQuotationPicked(c.Copy(), strconv.Itoa(designerID), strconv.Itoa(requestID))
			}()
		}

		logActivity(db, session, userName, "Design", "Pick",
			"Pick design quotation "+strconv.Itoa(quotationID)+" for request "+strconv.Itoa(requestID))
	}
}
