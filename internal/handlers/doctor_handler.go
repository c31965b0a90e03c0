package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Pranaysalavadhi/medic-connect-online/internal/httperr"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/models"
)

// DoctorHandler serves the public doctor directory that backs the search
// and booking pages.
type DoctorHandler struct {
	db *gorm.DB
}

func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{db: db}
}

type doctorCard struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Specialty    string `json:"specialty"`
	Availability string `json:"availability"`
	Description  string `json:"description"`
}

func (h *DoctorHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.
		Preload("DoctorProfile").
		Where("role = ?", models.RoleDoctor)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR id IN (SELECT user_id FROM doctor_profiles WHERE LOWER(specialty) LIKE ?)",
			like, like,
		)
	}

	var doctors []models.User
	if err := q.
		Order("name ASC").
		Find(&doctors).Error; err != nil {

		httperr.Internal(c, "failed_to_list_doctors", "Could not list doctors.")
		return
	}

	cards := make([]doctorCard, 0, len(doctors))
	for i := range doctors {
		cards = append(cards, toCard(&doctors[i]))
	}

	c.JSON(http.StatusOK, cards)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	var doctor models.User
	if err := h.db.
		Preload("DoctorProfile").
		Where("id = ? AND role = ?", c.Param("id"), models.RoleDoctor).
		First(&doctor).Error; err != nil {

		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}

	c.JSON(http.StatusOK, toCard(&doctor))
}

func toCard(doctor *models.User) doctorCard {
	card := doctorCard{
		ID:   doctor.ID,
		Name: doctor.Name,
	}
	if doctor.DoctorProfile != nil {
		card.Specialty = doctor.DoctorProfile.Specialty
		card.Availability = doctor.DoctorProfile.Availability
		card.Description = doctor.DoctorProfile.Description
	}
	return card
}
