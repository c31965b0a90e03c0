package appointment

import (
	"context"
	"time"

	domain "github.com/Pranaysalavadhi/medic-connect-online/internal/domain/appointment"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/dto"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/httperr"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/models"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/timezone"
)

// ListOptions are the raw filter knobs from the request. They narrow the
// actor's view; the actor scope itself is not negotiable.
type ListOptions struct {
	Status string
	Date   string // "today" or "2006-01-02"
}

type ListAppointments struct {
	repo domain.Repository
	tz   string
}

func NewListAppointments(
	repo domain.Repository,
	tz string,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
		tz:   tz,
	}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	actor Actor,
	opts ListOptions,
) ([]dto.AppointmentListDTO, error) {

	filter, err := uc.buildFilter(opts)
	if err != nil {
		return nil, err
	}

	var appointments []models.Appointment
	switch actor.Role {
	case models.RolePatient:
		appointments, err = uc.repo.ListAppointmentsForPatient(ctx, actor.ID, filter)
	case models.RoleDoctor:
		appointments, err = uc.repo.ListAppointmentsForDoctor(ctx, actor.ID, filter)
	default:
		return nil, httperr.ErrBusiness("forbidden")
	}
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:              ap.ID,
			DoctorID:        ap.DoctorID,
			DoctorName:      ap.Doctor.Name,
			PatientName:     ap.Patient.Name,
			AppointmentTime: ap.AppointmentTime,
			Status:          ap.Status,
			Notes:           ap.Notes,
		})
	}

	return out, nil
}

func (uc *ListAppointments) buildFilter(opts ListOptions) (domain.ListFilter, error) {
	var filter domain.ListFilter

	if opts.Status != "" {
		status, err := domain.ParseStatus(opts.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = status
	}

	switch opts.Date {
	case "":
	case "today":
		day := timezone.NowIn(uc.tz)
		filter.Day = &day
	default:
		day, err := time.ParseInLocation("2006-01-02", opts.Date, timezone.Location(uc.tz))
		if err != nil {
			return filter, httperr.ErrBusiness("invalid_date")
		}
		filter.Day = &day
	}

	return filter, nil
}
