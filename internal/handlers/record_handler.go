package handlers

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Pranaysalavadhi/medic-connect-online/internal/audit"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/httperr"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/middleware"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/models"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/storage"
)

const maxRecordSize = 10 << 20 // 10 MiB

// RecordHandler manages a patient's uploaded health documents. The bytes
// live in object storage; rows here only point at them.
type RecordHandler struct {
	db    *gorm.DB
	store *storage.RecordStore
	audit *audit.Dispatcher
}

func NewRecordHandler(
	db *gorm.DB,
	store *storage.RecordStore,
	auditDispatcher *audit.Dispatcher,
) *RecordHandler {
	return &RecordHandler{
		db:    db,
		store: store,
		audit: auditDispatcher,
	}
}

func (h *RecordHandler) Upload(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	if !h.store.Enabled() {
		httperr.Internal(c, "storage_not_configured", "Record storage is not configured.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "A file is required.")
		return
	}

	if fileHeader.Size > maxRecordSize {
		httperr.BadRequest(c, "file_too_large", "File exceeds the 10 MiB limit.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Could not read the uploaded file.")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key, url, err := h.store.Put(
		c.Request.Context(),
		patientID,
		fileHeader.Filename,
		contentType,
		file,
	)
	if err != nil {
		httperr.Internal(c, "failed_to_store_file", "Could not store the uploaded file.")
		return
	}

	record := models.HealthRecord{
		PatientID:  patientID,
		FileName:   fileHeader.Filename,
		FileType:   fileTypeLabel(fileHeader.Filename, contentType),
		FileURL:    url,
		StorageKey: key,
		UploadDate: time.Now(),
	}

	if err := h.db.Create(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_create_record", "Could not save the record.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &patientID,
		Action:   "record_uploaded",
		Entity:   "health_record",
		EntityID: &record.ID,
	})

	c.JSON(http.StatusCreated, record)
}

func (h *RecordHandler) List(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	var records []models.HealthRecord
	if err := h.db.
		Where("patient_id = ?", patientID).
		Order("upload_date DESC").
		Find(&records).Error; err != nil {

		httperr.Internal(c, "failed_to_list_records", "Could not list records.")
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *RecordHandler) Delete(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	var record models.HealthRecord
	if err := h.db.
		Where("id = ? AND patient_id = ?", c.Param("id"), patientID).
		First(&record).Error; err != nil {

		httperr.NotFound(c, "record_not_found", "Record not found.")
		return
	}

	// Best effort object removal; the row goes regardless so the record
	// disappears from the patient's view.
	_ = h.store.Delete(c.Request.Context(), record.StorageKey)

	if err := h.db.Delete(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_record", "Could not delete the record.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &patientID,
		Action:   "record_deleted",
		Entity:   "health_record",
		EntityID: &record.ID,
	})

	c.Status(http.StatusNoContent)
}

func fileTypeLabel(fileName, contentType string) string {
	if strings.HasPrefix(contentType, "image/") {
		return "Image"
	}
	ext := strings.TrimPrefix(strings.ToUpper(filepath.Ext(fileName)), ".")
	if ext == "" {
		return "File"
	}
	return ext
}
