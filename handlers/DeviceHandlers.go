package handlers

import (
	"backend/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type deviceTokenRequest struct {
	AccountID string `json:"accountId" binding:"required" example:"acc-5f2d"`
	FCMToken  string `json:"fcmToken" example:"fcm-token-value"`
}

// RegisterDeviceToken godoc
// @Summary      Register a device push token
// @Description  Stores the FCM token for an account's device so quotation and payment events can be pushed to it
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        request  body      deviceTokenRequest  true  "Account and token"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Router       /api/devices/token [post]
func RegisterDeviceToken(fcm *services.FCMService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if fcm == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push notifications are disabled"})
			return
		}

		var req deviceTokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if req.FCMToken == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "FCM token is required"})
			return
		}

		if err := fcm.SaveFCMToken(req.AccountID, req.FCMToken); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save device token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Device token registered"})
	}
}

// UnregisterDeviceToken godoc
// @Summary      Remove an account's device push tokens
// @Description  Deletes stored FCM tokens for the account, typically on logout
// @Tags         devices
// @Produce      json
// @Param        account_id  path      string  true  "Account ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      500  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Router       /api/devices/token/{account_id} [delete]
func UnregisterDeviceToken(fcm *services.FCMService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if fcm == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push notifications are disabled"})
			return
		}

		if err := fcm.RemoveFCMToken(c.Param("account_id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove device token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Device tokens removed"})
	}
}
