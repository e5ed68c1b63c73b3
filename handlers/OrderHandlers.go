package handlers

import (
	"backend/models"
	"backend/services"
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// businessConfigOrDefault loads the business section, falling back to zero
// rates when the section was never configured.
func businessConfigOrDefault(db *sql.DB) models.BusinessConfig {
	var business models.BusinessConfig
	_ = loadConfigSection(db, "business", &business)
	return business
}

// GetOrders godoc
// @Summary      List orders
// @Description  Lists school orders, optionally filtered by status. Service fee is derived from the configured service rate.
// @Tags         orders
// @Produce      json
// @Param        status  query     string  false  "Order status filter"
// @Success      200  {array}   models.Order
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/orders [get]
func GetOrders(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.Query("status")

		query := `
			SELECT id, school_name, status, deadline, price, deposit_rate, created_at
			FROM orders`
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

		business := businessConfigOrDefault(db)

		var orders []models.Order
		for rows.Next() {
			var order models.Order
			var deadline sql.NullTime
			err := rows.Scan(&order.ID, &order.SchoolName, &order.Status, &deadline,
				&order.Price, &order.DepositRate, &order.CreatedAt)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if deadline.Valid {
				order.Deadline = &deadline.Time
			}
			order.ServiceFee = services.CalcServiceFee(order.Price, business.ServiceRate)
			orders = append(orders, order)
		}

		if orders == nil {
			orders = []models.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func loadOrderDetails(db *sql.DB, orderID int) ([]models.OrderDetail, error) {
	rows, err := db.Query(`
		SELECT id, size, quantity, base_logo_height, base_logo_width,
		       front_image_url, back_image_url,
		       category, gender, type, color, logo_position
		FROM order_details
		WHERE order_id = $1
		ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []models.OrderDetail
	for rows.Next() {
		var d models.OrderDetail
		item := &models.DeliveryItem{DesignItem: &models.DesignItem{}}
		err := rows.Scan(&d.ID, &d.Size, &d.Quantity,
			&item.BaseLogoHeight, &item.BaseLogoWidth,
			&item.FrontImageURL, &item.BackImageURL,
			&item.DesignItem.Category, &item.DesignItem.Gender, &item.DesignItem.Type,
			&item.DesignItem.Color, &item.DesignItem.LogoPosition)
		if err != nil {
			return nil, err
		}
		d.DeliveryItem = item
		details = append(details, d)
	}
	return details, rows.Err()
}

// GetOrderDetail godoc
// @Summary      Get order detail
// @Description  Returns the order, its detail lines, and the grouped rows with rowspan metadata for the merged-cell table
// @Tags         orders
// @Produce      json
// @Param        id  path      int  true  "Order ID"
// @Success      200  {object}  models.OrderDetailResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/orders/{id} [get]
func GetOrderDetail(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var order models.Order
		var deadline sql.NullTime
		err = db.QueryRow(`
			SELECT id, school_name, status, deadline, price, deposit_rate, created_at
			FROM orders WHERE id = $1`, orderID).
			Scan(&order.ID, &order.SchoolName, &order.Status, &deadline,
				&order.Price, &order.DepositRate, &order.CreatedAt)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if deadline.Valid {
			order.Deadline = &deadline.Time
		}

		business := businessConfigOrDefault(db)
		order.ServiceFee = services.CalcServiceFee(order.Price, business.ServiceRate)

		details, err := loadOrderDetails(db, orderID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		order.OrderDetails = details

		c.JSON(http.StatusOK, models.OrderDetailResponse{
			Order:        order,
			GroupedItems: services.GroupOrderItems(details),
		})
	}
}
