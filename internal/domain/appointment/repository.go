package appointment

import (
	"context"
	"time"

	"github.com/Pranaysalavadhi/medic-connect-online/internal/models"
)

// ListFilter narrows a scoped listing. The zero value means "everything
// the actor may see"; a filter can only shrink that set, never widen it.
type ListFilter struct {
	Status Status
	Day    *time.Time
}

type Repository interface {
	// -------- Doctor directory --------
	GetDoctorByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Appointment (create) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentByID(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Scoped listings --------
	ListAppointmentsForPatient(
		ctx context.Context,
		patientID uint,
		filter ListFilter,
	) ([]models.Appointment, error)

	ListAppointmentsForDoctor(
		ctx context.Context,
		doctorID uint,
		filter ListFilter,
	) ([]models.Appointment, error)
}
