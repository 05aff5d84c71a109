package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vinocave/vinocave-backend/internal/errors"
	"github.com/vinocave/vinocave-backend/internal/middleware"
	"github.com/vinocave/vinocave-backend/internal/storage"
)

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(s3Storage *storage.S3Storage) *UploadController {
	return &UploadController{
		storage: s3Storage,
	}
}

type PresignUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	FileSize    int64  `json:"file_size" binding:"required,min=1"`
}

// PresignLabelUpload returns a pre-signed URL for a wine label photo
// POST /api/v1/uploads/label
func (ctrl *UploadController) PresignLabelUpload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Données de téléversement invalides")
		return
	}

	if err := ctrl.storage.ValidateContentType(req.ContentType, storage.AllowedLabelImageTypes); err != nil {
		log.Warn("Rejected label upload content type", map[string]interface{}{
			"user_id":      userID,
			"content_type": req.ContentType,
		})
		errors.BadRequest(c, errors.UploadInvalidFileType, "Format d'image non pris en charge")
		return
	}

	if err := ctrl.storage.ValidateFileSize(req.FileSize, storage.MaxLabelImageSize); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidRange, "L'image est trop volumineuse (10 Mo maximum)")
		return
	}

	presigned, err := ctrl.storage.PresignLabelUpload(req.Filename, req.ContentType)
	if err != nil {
		log.Error("Failed to presign label upload", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, errors.UploadFailed, "Erreur lors de la préparation du téléversement")
		return
	}

	log.Info("Label upload presigned", map[string]interface{}{
		"user_id": userID,
		"key":     presigned.Key,
	})

	c.JSON(http.StatusOK, presigned)
}
