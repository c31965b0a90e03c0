package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/Pranaysalavadhi/medic-connect-online/internal/audit"
	domain "github.com/Pranaysalavadhi/medic-connect-online/internal/domain/appointment"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/httperr"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/models"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/notify"
)

type UpdateStatus struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier notify.Notifier
	now      func() time.Time
}

func NewUpdateStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier notify.Notifier,
) *UpdateStatus {
	return &UpdateStatus{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		now:      time.Now,
	}
}

// Execute applies a status transition. Only the assigned doctor may move
// an appointment, and only out of PENDING; a transition attempted on a
// terminal appointment fails with invalid_state rather than no-opping.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	actor Actor,
	appointmentID uint,
	target domain.Status,
) (*models.Appointment, error) {

	if actor.Role != models.RoleDoctor {
		return nil, httperr.ErrBusiness("forbidden")
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil || ap == nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if ap.DoctorID != actor.ID {
		return nil, httperr.ErrBusiness("forbidden")
	}

	now := uc.now()

	var action string
	switch target {
	case domain.StatusConfirmed:
		if err := domain.Confirm(ap, now); err != nil {
			return nil, err
		}
		action = "appointment_confirmed"
	case domain.StatusCancelled:
		if err := domain.Cancel(ap, now); err != nil {
			return nil, err
		}
		action = "appointment_cancelled"
	default:
		return nil, httperr.ErrBusiness("invalid_status")
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.notifier.Notify("success", "Appointment "+strings.ToLower(string(target)))

	return ap, nil
}
