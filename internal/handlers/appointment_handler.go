package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/Pranaysalavadhi/medic-connect-online/internal/domain/appointment"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/httperr"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/httpresp"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/middleware"
	ucAppointment "github.com/Pranaysalavadhi/medic-connect-online/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC *ucAppointment.CreateAppointment
	updateUC *ucAppointment.UpdateStatus
	listUC   *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateStatus,
	listUC *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC: createUC,
		updateUC: updateUC,
		listUC:   listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	DoctorID        uint   `json:"doctor_id" binding:"required"`
	AppointmentTime string `json:"appointment_time" binding:"required"`
	Notes           string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func actorFrom(c *gin.Context) ucAppointment.Actor {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return ucAppointment.Actor{}
	}
	return ucAppointment.Actor{
		ID:   sess.UserID,
		Name: sess.Name,
		Role: sess.Role,
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	when, err := time.Parse(time.RFC3339, req.AppointmentTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_time", "Appointment time must be RFC 3339.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), actorFrom(c), ucAppointment.CreateAppointmentInput{
		DoctorID: req.DoctorID,
		Time:     when,
		Notes:    req.Notes,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "time_in_past"):
			httperr.BadRequest(c, "time_in_past", "Appointment time must be in the future.")
		case httperr.IsBusiness(err, "doctor_not_found"):
			httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		case httperr.IsBusiness(err, "forbidden"):
			httperr.Forbidden(c, "forbidden", "Only patients can book appointments.")
		default:
			httperr.Internal(c, "failed_to_create_appointment", "Could not create appointment.")
		}
		return
	}

	c.JSON(201, ap)
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid status payload.")
		return
	}

	target, err := domain.ParseStatus(req.Status)
	if err != nil {
		httperr.BadRequest(c, "invalid_status", "Unknown appointment status.")
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), actorFrom(c), uint(id), target)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		case httperr.IsBusiness(err, "forbidden"):
			httperr.Forbidden(c, "forbidden", "Only the assigned doctor can update this appointment.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.Conflict(c, "invalid_state", "Appointment is already settled.")
		case httperr.IsBusiness(err, "invalid_status"):
			httperr.BadRequest(c, "invalid_status", "Unsupported status change.")
		default:
			httperr.Internal(c, "failed_to_update_appointment", "Could not update appointment.")
		}
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	out, err := h.listUC.Execute(c.Request.Context(), actorFrom(c), ucAppointment.ListOptions{
		Status: c.Query("status"),
		Date:   c.Query("date"),
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_status"):
			httperr.BadRequest(c, "invalid_status", "Unknown status filter.")
		case httperr.IsBusiness(err, "invalid_date"):
			httperr.BadRequest(c, "invalid_date", "Date filter must be 'today' or YYYY-MM-DD.")
		case httperr.IsBusiness(err, "forbidden"):
			httperr.Forbidden(c, "forbidden", "Role may not list appointments.")
		default:
			httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		}
		return
	}

	httpresp.List(c, out)
}
