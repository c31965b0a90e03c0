package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/Pranaysalavadhi/medic-connect-online/internal/domain/appointment"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/middleware"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/models"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/routegate"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/timezone"
)

type MeHandler struct {
	db *gorm.DB
	tz string
}

func NewMeHandler(db *gorm.DB, tz string) *MeHandler {
	return &MeHandler{db: db, tz: tz}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	var user models.User
	if err := h.db.Preload("DoctorProfile").First(&user, sess.UserID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	payload := gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
	if user.DoctorProfile != nil {
		payload["doctor_profile"] = user.DoctorProfile
	}

	c.JSON(http.StatusOK, gin.H{"user": payload})
}

// Dashboard renders the role-polymorphic landing payload: the doctor
// variant for DOCTOR sessions, the patient variant for everyone else.
func (h *MeHandler) Dashboard(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	switch routegate.DashboardFor(sess.Role) {
	case routegate.DoctorDashboard:
		h.doctorDashboard(c, sess.UserID)
	case routegate.PatientDashboard:
		h.patientDashboard(c, sess.UserID)
	}
}

func (h *MeHandler) doctorDashboard(c *gin.Context, doctorID uint) {
	now := timezone.NowIn(h.tz)
	dayStart, dayEnd := timezone.DayBounds(now)

	var pending int64
	h.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND status = ?", doctorID, string(domain.StatusPending)).
		Count(&pending)

	var today int64
	h.db.Model(&models.Appointment{}).
		Where(
			"doctor_id = ? AND appointment_time >= ? AND appointment_time < ?",
			doctorID, dayStart, dayEnd,
		).
		Count(&today)

	c.JSON(http.StatusOK, gin.H{
		"variant":       routegate.DoctorDashboard,
		"pending_count": pending,
		"today_count":   today,
	})
}

func (h *MeHandler) patientDashboard(c *gin.Context, patientID uint) {
	var upcoming []models.Appointment
	h.db.
		Preload("Doctor").
		Where(
			"patient_id = ? AND appointment_time >= ? AND status <> ?",
			patientID, time.Now(), string(domain.StatusCancelled),
		).
		Order("appointment_time ASC").
		Limit(5).
		Find(&upcoming)

	c.JSON(http.StatusOK, gin.H{
		"variant":  routegate.PatientDashboard,
		"upcoming": upcoming,
	})
}
