package appointment

import (
	"context"
	"time"

	"github.com/Pranaysalavadhi/medic-connect-online/internal/audit"
	domain "github.com/Pranaysalavadhi/medic-connect-online/internal/domain/appointment"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/httperr"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/models"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	DoctorID uint
	Time     time.Time
	Notes    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier notify.Notifier
	now      func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier notify.Notifier,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		now:      time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor Actor,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if actor.Role != models.RolePatient {
		return nil, httperr.ErrBusiness("forbidden")
	}

	if !in.Time.After(uc.now()) {
		return nil, httperr.ErrBusiness("time_in_past")
	}

	doctor, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil || doctor == nil || doctor.Role != models.RoleDoctor {
		return nil, httperr.ErrBusiness("doctor_not_found")
	}

	ap := &models.Appointment{
		DoctorID:        doctor.ID,
		PatientID:       actor.ID,
		AppointmentTime: in.Time,
		Status:          string(domain.InitialStatus()),
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.notifier.Notify("success", "Appointment requested with "+doctor.Name)

	return ap, nil
}
