package handlers

import (
	"backend/models"
	"backend/services"
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// loadConfigSection unmarshals one platform_config row into out. A missing row
// leaves out at its zero value so newly added sections default sanely.
func loadConfigSection(db *sql.DB, section string, out interface{}) error {
	var data []byte
	err := db.QueryRow(`SELECT data FROM platform_config WHERE section = $1`, section).Scan(&data)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func saveConfigSection(db *sql.DB, section string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO platform_config (section, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (section) DO UPDATE SET data = $2, updated_at = NOW()
	`, section, data)
	return err
}

// loadPlatformConfig assembles the full config document from its section rows.
func loadPlatformConfig(db *sql.DB) (models.PlatformConfig, error) {
	var config models.PlatformConfig
	sections := map[string]interface{}{
		"business": &config.Business,
		"media":    &config.Media,
		"design":   &config.Design,
		"order":    &config.Order,
		"report":   &config.Report,
	}
	for section, target := range sections {
		if err := loadConfigSection(db, section, target); err != nil {
			return config, err
		}
	}
	return config, nil
}

// GetSystemConfig godoc
// @Summary      Get platform configuration
// @Description  Returns the platform config. Business rates are converted from stored fractions to whole percentages for display.
// @Tags         config
// @Produce      json
// @Success      200  {object}  object
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/system/config [get]
func GetSystemConfig(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		config, err := loadPlatformConfig(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load config", "details": err.Error()})
			return
		}

		// The console edits whole percentages, never fractions.
		business := gin.H{
			"taxRate":     services.PercentFromRate(config.Business.TaxRate),
			"serviceRate": services.PercentFromRate(config.Business.ServiceRate),
			"minPay":      config.Business.MinPay,
			"maxPay":      config.Business.MaxPay,
		}

		c.JSON(http.StatusOK, gin.H{
			"business": business,
			"media":    config.Media,
			"design":   config.Design,
			"order":    config.Order,
			"report":   config.Report,
		})
	}
}

// UpdateSystemConfig godoc
// @Summary      Update platform configuration
// @Description  Updates submitted sections only; nil sections stay untouched. Business rates arrive as whole percentages and are stored as fractions.
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        Authorization  header  string  true  "Session token"
// @Param        body  body      models.UpdateConfigRequest  true  "Sections to update"
// @Success      200   {object}  models.MessageResponse
// @Failure      400   {object}  models.ErrorResponse
// @Failure      401   {object}  models.ErrorResponse
// @Failure      500   {object}  models.ErrorResponse
// @Router       /api/system/config [put]
func UpdateSystemConfig(db *sql.DB) gin.HandlerFunc {
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

		var req models.UpdateConfigRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.BusinessData != nil {
			if req.BusinessData.TaxRate < 0 || req.BusinessData.TaxRate > 100 ||
				req.BusinessData.ServiceRate < 0 || req.BusinessData.ServiceRate > 100 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Rates must be between 0 and 100"})
				return
			}
			if req.BusinessData.MinPay < 0 || req.BusinessData.MaxPay < req.BusinessData.MinPay {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment bounds"})
				return
			}

			business := models.BusinessConfig{
				TaxRate:     services.RateFromPercent(req.BusinessData.TaxRate),
				ServiceRate: services.RateFromPercent(req.BusinessData.ServiceRate),
				MinPay:      req.BusinessData.MinPay,
				MaxPay:      req.BusinessData.MaxPay,
			}
			if err := saveConfigSection(db, "business", business); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save business config", "details": err.Error()})
				return
			}
		}

		if req.MediaData != nil {
			if err := saveConfigSection(db, "media", req.MediaData); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save media config", "details": err.Error()})
				return
			}
		}

		if req.DesignData != nil {
			if err := saveConfigSection(db, "design", req.DesignData); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save design config", "details": err.Error()})
				return
			}
		}

		if req.OrderData != nil {
			if err := saveConfigSection(db, "order", req.OrderData); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save order config", "details": err.Error()})
				return
			}
		}

		if req.ReportData != nil {
			if err := saveConfigSection(db, "report", req.ReportData); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save report config", "details": err.Error()})
				return
			}
		}

		// New fabrics submitted alongside the config sections.
		for _, fabric := range req.FabricDataList {
			_, err := db.Exec(`
				INSERT INTO fabrics (name, description, for_shirt, for_pants, for_skirt, for_regular, for_pe)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, fabric.Name, fabric.Description, fabric.ForShirt, fabric.ForPants, fabric.ForSkirt, fabric.ForRegular, fabric.ForPE)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert fabric", "details": err.Error()})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Config updated"})

		logActivity(db, session, userName, "Config", "Update", "Update platform configuration")
	}
}
