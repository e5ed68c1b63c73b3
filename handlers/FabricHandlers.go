package handlers

import (
	"backend/models"
	"backend/services"
	"database/sql"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
)

func scanFabrics(rows *sql.Rows) ([]models.Fabric, error) {
	var fabrics []models.Fabric
	for rows.Next() {
		var f models.Fabric
		err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.ForShirt, &f.ForPants, &f.ForSkirt, &f.ForRegular, &f.ForPE)
		if err != nil {
			return nil, err
		}
		fabrics = append(fabrics, f)
	}
	return fabrics, rows.Err()
}

// loadSizeCatalog returns every size definition ordered by garment type then
// canonical size order.
func loadSizeCatalog(db *sql.DB) ([]models.SizePrice, error) {
	rows, err := db.Query(`
		SELECT enum_name, name, size, min_height, max_height, min_weight, max_weight, type
		FROM sizes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sizes []models.SizePrice
	for rows.Next() {
		var s models.SizePrice
		if err := rows.Scan(&s.EnumName, &s.Name, &s.Size, &s.MinHeight, &s.MaxHeight, &s.MinWeight, &s.MaxWeight, &s.Type); err != nil {
			return nil, err
		}
		sizes = append(sizes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(sizes, func(i, j int) bool {
		if sizes[i].Type != sizes[j].Type {
			return sizes[i].Type < sizes[j].Type
		}
		return services.SizeOrderIndex(sizes[i].Size) < services.SizeOrderIndex(sizes[j].Size)
	})
	return sizes, nil
}

// GetSizes godoc
// @Summary      List size definitions
// @Description  Returns the size catalog ordered by garment type and canonical size order
// @Tags         fabrics
// @Produce      json
// @Success      200  {array}   models.SizePrice
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/sizes [get]
func GetSizes(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sizes, err := loadSizeCatalog(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sizes)
	}
}

// GetGarmentFabrics godoc
// @Summary      List fabrics for a garment factory
// @Description  Splits the catalog into fabrics the factory has not priced yet and fabrics it already sells, with per-size prices for the latter
// @Tags         fabrics
// @Produce      json
// @Param        garment_id  path      int  true  "Garment factory ID"
// @Success      200  {object}  models.FabricListResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/garments/{garment_id}/fabrics [get]
func GetGarmentFabrics(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		garmentID, err := strconv.Atoi(c.Param("garment_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid garment ID"})
			return
		}

		rows, err := db.Query(`
			SELECT id, name, description, for_shirt, for_pants, for_skirt, for_regular, for_pe
			FROM fabrics ORDER BY name`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		fabrics, err := scanFabrics(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Prices this factory already entered, keyed fabric -> size enum.
		priceRows, err := db.Query(`
			SELECT fsp.fabric_id, s.enum_name, s.name, s.size, fsp.price,
			       s.min_height, s.max_height, s.min_weight, s.max_weight, s.type
			FROM fabric_size_prices fsp
			JOIN sizes s ON s.enum_name = fsp.size_enum_name
			WHERE fsp.garment_id = $1`, garmentID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer priceRows.Close()

		priced := make(map[int][]models.SizePrice)
		for priceRows.Next() {
			var fabricID int
			var s models.SizePrice
			err := priceRows.Scan(&fabricID, &s.EnumName, &s.Name, &s.Size, &s.Price,
				&s.MinHeight, &s.MaxHeight, &s.MinWeight, &s.MaxWeight, &s.Type)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			priced[fabricID] = append(priced[fabricID], s)
		}

		response := models.FabricListResponse{
			NonPrice: []models.Fabric{},
			HasPrice: []models.Fabric{},
		}
		for _, fabric := range fabrics {
			if sizes, ok := priced[fabric.ID]; ok {
				sort.SliceStable(sizes, func(i, j int) bool {
					return services.SizeOrderIndex(sizes[i].Size) < services.SizeOrderIndex(sizes[j].Size)
				})
				fabric.Sizes = sizes
				response.HasPrice = append(response.HasPrice, fabric)
			} else {
				response.NonPrice = append(response.NonPrice, fabric)
			}
		}

		c.JSON(http.StatusOK, response)
	}
}

// UpdateFabricPrices godoc
// @Summary      Update a garment factory's fabric price matrix
// @Description  Validates every submitted price against the allowed bounds and the fabric's required sizes, then upserts the matrix
// @Tags         fabrics
// @Accept       json
// @Produce      json
// @Param        Authorization  header  string  true  "Session token"
// @Param        garment_id  path  int  true  "Garment factory ID"
// @Param        body  body      models.UpdateFabricPricesRequest  true  "Price matrix"
// @Success      200   {object}  models.MessageResponse
// @Failure      400   {object}  models.ValidationErrorResponse
// @Failure      401   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Failure      500   {object}  models.ErrorResponse
// @Router       /api/garments/{garment_id}/fabrics [put]
func UpdateFabricPrices(db *sql.DB) gin.HandlerFunc {
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

		garmentID, err := strconv.Atoi(c.Param("garment_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid garment ID"})
			return
		}

		var req models.UpdateFabricPricesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		sizeCatalog, err := loadSizeCatalog(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		tx, err := db.Begin()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer tx.Rollback()

		for _, update := range req.Fabrics {
			var fabric models.Fabric
			err := tx.QueryRow(`
				SELECT id, name, description, for_shirt, for_pants, for_skirt, for_regular, for_pe
				FROM fabrics WHERE id = $1`, update.FabricID).
				Scan(&fabric.ID, &fabric.Name, &fabric.Description, &fabric.ForShirt, &fabric.ForPants,
					&fabric.ForSkirt, &fabric.ForRegular, &fabric.ForPE)
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"error": "Fabric not found", "details": strconv.Itoa(update.FabricID)})
				return
			}
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}

			if fieldErrors := services.ValidateSizePriceEntries(update.SizePrices); len(fieldErrors) > 0 {
				c.JSON(http.StatusBadRequest, models.ValidationErrorResponse{
					Error:       services.MsgFixInvalidPrices,
					FieldErrors: fieldErrors,
				})
				return
			}

			// Each canonical size of the fabric's primary type needs at least
			// one priced gender variant.
			submitted := make(map[string]bool, len(update.SizePrices))
			for _, entry := range update.SizePrices {
				submitted[entry.SizeEnumName] = true
			}
			for size, variants := range services.RequiredSizes(fabric, sizeCatalog) {
				covered := false
				for _, variant := range variants {
					if submitted[variant.EnumName] {
						covered = true
						break
					}
				}
				if !covered {
					c.JSON(http.StatusBadRequest, models.ValidationErrorResponse{
						Error:       services.MsgCompletePrices,
						FieldErrors: map[string]string{size: "Price required for size " + size},
					})
					return
				}
			}

			for _, entry := range update.SizePrices {
				_, err := tx.Exec(`
					INSERT INTO fabric_size_prices (garment_id, fabric_id, size_enum_name, price, updated_at)
					VALUES ($1, $2, $3, $4, NOW())
					ON CONFLICT (garment_id, fabric_id, size_enum_name)
					DO UPDATE SET price = $4, updated_at = NOW()
				`, garmentID, update.FabricID, entry.SizeEnumName, entry.Price)
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
					return
				}
			}
		}

		if err := tx.Commit(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Fabric prices updated"})

		logActivity(db, session, userName, "Fabric", "Update",
			"Update fabric prices for garment "+strconv.Itoa(garmentID))
	}
}

// DeleteFabric godoc
// @Summary      Delete a fabric
// @Description  Removes a catalog fabric and its per-factory prices
// @Tags         fabrics
// @Produce      json
// @Param        Authorization  header  string  true  "Session token"
// @Param        id  path      int  true  "Fabric ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/fabrics/{id} [delete]
func DeleteFabric(db *sql.DB) gin.HandlerFunc {
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

		fabricID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fabric ID"})
			return
		}

		tx, err := db.Begin()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer tx.Rollback()

		if _, err := tx.Exec(`DELETE FROM fabric_size_prices WHERE fabric_id = $1`, fabricID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		result, err := tx.Exec(`DELETE FROM fabrics WHERE id = $1`, fabricID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fabric not found"})
			return
		}

		if err := tx.Commit(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Fabric deleted"})

		logActivity(db, session, userName, "Fabric", "Delete", "Delete fabric "+strconv.Itoa(fabricID))
	}
}
