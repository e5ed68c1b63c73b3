package handlers

import (
	"backend/models"
	"backend/services"
	"database/sql"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const uploadDir = "/var/www/uniform-media/"

// ServeFile godoc
// @Summary      Serve file
// @Description  Serve an uploaded file by name from query param ?file=filename
// @Tags         upload
// @Produce      application/octet-stream
// @Param        file  query     string  true  "File name (path relative to storage)"
// @Success      200   {file}   file    "File content"
// @Failure      400   {object}  models.ErrorResponse
// @Failure      403   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Failure      500   {object}  models.ErrorResponse
// @Router       /api/get-file [get]
func ServeFile(c *gin.Context) {
	fileName := c.Query("file")
	if fileName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file parameter is required"})
		return
	}

	// Secure the file path to prevent directory traversal attacks
	cleanFileName := filepath.Clean(fileName)
	if cleanFileName != fileName || strings.Contains(cleanFileName, "..") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file path"})
		return
	}

	absoluteUploadDir, err := filepath.Abs(uploadDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	filePath := filepath.Join(absoluteUploadDir, cleanFileName)
	if !strings.HasPrefix(filePath, absoluteUploadDir+string(os.PathSeparator)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) || (err == nil && info.IsDir()) {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	file, err := os.Open(filePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	defer file.Close()

	// Sniff the MIME type from the first bytes
	buffer := make([]byte, 512)
	if _, err = file.Read(buffer); err != nil && err != io.EOF {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.Writer.Header().Set("Content-Type", http.DetectContentType(buffer))
	c.File(filePath)
}

func allowedFormat(ext string, formats []string) bool {
	for _, f := range formats {
		if strings.EqualFold(strings.TrimPrefix(f, "."), ext) {
			return true
		}
	}
	return false
}

// UploadFile godoc
// @Summary      Upload an image
// @Description  Upload an image (multipart form, field name: file). The file is validated against the configured media limits and stored under a random name.
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file    true  "File to upload"
// @Success      200   {object}  object  "message, file name, url"
// @Failure      400   {object}  models.ErrorResponse
// @Failure      413   {object}  models.ErrorResponse
// @Failure      500   {object}  models.ErrorResponse
// @Router       /api/upload [post]
func UploadFile(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, handler, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Error retrieving the file"})
			return
		}
		defer file.Close()

		filename := filepath.Base(handler.Filename)
		if filename == "" || filename == "." {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file name"})
			return
		}

		var media models.MediaConfig
		if err := loadConfigSection(db, "media", &media); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load media config"})
			return
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
		if len(media.ImgFormat) > 0 && !allowedFormat(ext, media.ImgFormat) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "File format not allowed, expected one of: " + strings.Join(media.ImgFormat, ", "),
			})
			return
		}

		if media.MaxImgSize > 0 && handler.Size > media.MaxImgSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "File exceeds the maximum size of " + services.FormatNumber(media.MaxImgSize) + " bytes",
			})
			return
		}

		if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
			if err := os.MkdirAll(uploadDir, 0755); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to create directory"})
				return
			}
		}

		// Store under a random name so uploads never collide or leak originals.
		storedName := uuid.New().String()
		if ext != "" {
			storedName += "." + ext
		}

		dst, err := os.Create(filepath.Join(uploadDir, storedName))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to create file"})
			return
		}
		defer dst.Close()

		if _, err := io.Copy(dst, file); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save file"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "File uploaded",
			"file":    storedName,
			"url":     "/api/get-file?file=" + storedName,
		})
	}
}
