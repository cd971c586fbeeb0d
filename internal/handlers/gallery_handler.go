package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giovanabeautify/salon-scheduler/internal/gallery"
	"github.com/giovanabeautify/salon-scheduler/internal/httpresp"
	"github.com/giovanabeautify/salon-scheduler/internal/models"
)

type GalleryHandler struct {
	db       *gorm.DB
	uploader *gallery.Uploader
}

func NewGalleryHandler(db *gorm.DB, uploader *gallery.Uploader) *GalleryHandler {
	return &GalleryHandler{db: db, uploader: uploader}
}

// List devolve as fotos do portfólio, mais recentes primeiro. Rota
// pública.
func (h *GalleryHandler) List(c *gin.Context) {
	var images []models.WorkImage
	if err := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Find(&images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	httpresp.List(c, images)
}

// Upload recebe a foto via multipart, envia para o bucket e grava a
// referência. Fica indisponível quando o bucket não está configurado.
func (h *GalleryHandler) Upload(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "gallery_disabled"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_image"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_image"})
		return
	}
	defer file.Close()

	key, url, err := h.uploader.Upload(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload_failed"})
		return
	}

	img := models.WorkImage{
		ID:        uuid.NewString(),
		ServiceID: c.PostForm("service_id"),
		Title:     c.PostForm("title"),
		ObjectKey: key,
		URL:       url,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&img).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusCreated, img)
}
