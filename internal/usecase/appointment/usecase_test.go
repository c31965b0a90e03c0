package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pranaysalavadhi/medic-connect-online/internal/audit"
	domain "github.com/Pranaysalavadhi/medic-connect-online/internal/domain/appointment"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/httperr"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/models"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/notify"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/timezone"
)

// ------------------------------------------------------
// in-memory repository
// ------------------------------------------------------

type fakeRepo struct {
	doctors      map[uint]*models.User
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		doctors:      make(map[uint]*models.User),
		appointments: make(map[uint]*models.Appointment),
	}
}

func (r *fakeRepo) addDoctor(id uint, name string) {
	r.doctors[id] = &models.User{ID: id, Name: name, Role: models.RoleDoctor}
}

func (r *fakeRepo) GetDoctorByID(_ context.Context, id uint) (*models.User, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, httperr.ErrBusiness("doctor_not_found")
	}
	return d, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.nextID++
	ap.ID = r.nextID
	stored := *ap
	if d, ok := r.doctors[ap.DoctorID]; ok {
		stored.Doctor = *d
	}
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) GetAppointmentByID(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	copied := *ap
	return &copied, nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) ListAppointmentsForPatient(
	_ context.Context,
	patientID uint,
	filter domain.ListFilter,
) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.PatientID == patientID && matches(ap, filter) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForDoctor(
	_ context.Context,
	doctorID uint,
	filter domain.ListFilter,
) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.DoctorID == doctorID && matches(ap, filter) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func matches(ap *models.Appointment, filter domain.ListFilter) bool {
	if filter.Status != "" && ap.Status != string(filter.Status) {
		return false
	}
	if filter.Day != nil {
		start, end := timezone.DayBounds(*filter.Day)
		if ap.AppointmentTime.Before(start) || !ap.AppointmentTime.Before(end) {
			return false
		}
	}
	return true
}

var _ domain.Repository = (*fakeRepo)(nil)

// ------------------------------------------------------
// helpers
// ------------------------------------------------------

var (
	drSarah = Actor{ID: 1, Name: "Sarah Johnson", Role: models.RoleDoctor}
	drChen  = Actor{ID: 2, Name: "Michael Chen", Role: models.RoleDoctor}
	john    = Actor{ID: 10, Name: "John Doe", Role: models.RolePatient}
	emma    = Actor{ID: 11, Name: "Emma Smith", Role: models.RolePatient}
)

func newUsecases(repo *fakeRepo) (*CreateAppointment, *UpdateStatus, *ListAppointments) {
	dispatcher := audit.NewDispatcher(nil)
	notifier := notify.NewLogNotifier()
	return NewCreateAppointment(repo, dispatcher, notifier),
		NewUpdateStatus(repo, dispatcher, notifier),
		NewListAppointments(repo, "UTC")
}

func book(t *testing.T, createUC *CreateAppointment, patient Actor, doctorID uint, when time.Time, notes string) *models.Appointment {
	t.Helper()
	ap, err := createUC.Execute(context.Background(), patient, CreateAppointmentInput{
		DoctorID: doctorID,
		Time:     when,
		Notes:    notes,
	})
	require.NoError(t, err)
	return ap
}

// ------------------------------------------------------
// create
// ------------------------------------------------------

func TestCreateAppointmentStartsPending(t *testing.T) {
	repo := newFakeRepo()
	repo.addDoctor(1, "Sarah Johnson")
	createUC, _, _ := newUsecases(repo)

	tomorrow := time.Now().Add(24 * time.Hour)
	ap := book(t, createUC, john, 1, tomorrow, "checkup")

	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.Equal(t, uint(1), ap.DoctorID)
	assert.Equal(t, john.ID, ap.PatientID)
	assert.Equal(t, "checkup", ap.Notes)
}

func TestCreateRejectsPastTime(t *testing.T) {
	repo := newFakeRepo()
	repo.addDoctor(1, "Sarah Johnson")
	createUC, _, _ := newUsecases(repo)

	_, err := createUC.Execute(context.Background(), john, CreateAppointmentInput{
		DoctorID: 1,
		Time:     time.Now().Add(-time.Hour),
	})
	assert.True(t, httperr.IsBusiness(err, "time_in_past"), "got %v", err)
}

func TestCreateRejectsUnknownDoctor(t *testing.T) {
	repo := newFakeRepo()
	createUC, _, _ := newUsecases(repo)

	_, err := createUC.Execute(context.Background(), john, CreateAppointmentInput{
		DoctorID: 99,
		Time:     time.Now().Add(time.Hour),
	})
	assert.True(t, httperr.IsBusiness(err, "doctor_not_found"), "got %v", err)
}

func TestCreateByDoctorForbidden(t *testing.T) {
	repo := newFakeRepo()
	repo.addDoctor(1, "Sarah Johnson")
	createUC, _, _ := newUsecases(repo)

	_, err := createUC.Execute(context.Background(), drSarah, CreateAppointmentInput{
		DoctorID: 1,
		Time:     time.Now().Add(time.Hour),
	})
	assert.True(t, httperr.IsBusiness(err, "forbidden"), "got %v", err)
}

// ------------------------------------------------------
// update status
// ------------------------------------------------------

func TestPatientCanNeverConfirm(t *testing.T) {
	repo := newFakeRepo()
	repo.addDoctor(1, "Sarah Johnson")
	createUC, updateUC, _ := newUsecases(repo)

	ap := book(t, createUC, john, 1, time.Now().Add(24*time.Hour), "")

	for _, prior := range []domain.Status{domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled} {
		repo.appointments[ap.ID].Status = string(prior)

		_, err := updateUC.Execute(context.Background(), john, ap.ID, domain.StatusConfirmed)
		assert.True(t, httperr.IsBusiness(err, "forbidden"), "prior=%s got %v", prior, err)

		stored, _ := repo.GetAppointmentByID(context.Background(), ap.ID)
		assert.Equal(t, string(prior), stored.Status, "state must be untouched")
	}
}

func TestDoctorConfirmsPending(t *testing.T) {
	repo := newFakeRepo()
	repo.addDoctor(1, "Sarah Johnson")
	createUC, updateUC, listUC := newUsecases(repo)

	tomorrow := time.Now().Add(24 * time.Hour)
	ap := book(t, createUC, john, 1, tomorrow, "checkup")

	updated, err := updateUC.Execute(context.Background(), drSarah, ap.ID, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), updated.Status)
	require.NotNil(t, updated.ConfirmedAt)

	// Visible under the patient's CONFIRMED filter, gone from PENDING.
	confirmed, err := listUC.Execute(context.Background(), john, ListOptions{Status: "CONFIRMED"})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, ap.ID, confirmed[0].ID)

	pending, err := listUC.Execute(context.Background(), john, ListOptions{Status: "PENDING"})
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDoctorDeclinesPending(t *testing.T) {
	repo := newFakeRepo()
	repo.addDoctor(1, "Sarah Johnson")
	createUC, updateUC, _ := newUsecases(repo)

	ap := book(t, createUC, john, 1, time.Now().Add(24*time.Hour), "")

	updated, err := updateUC.Execute(context.Background(), drSarah, ap.ID, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), updated.Status)
	require.NotNil(t, updated.CancelledAt)
}

func TestOnlyAssignedDoctorMayUpdate(t *testing.T) {
	repo := newFakeRepo()
	repo.addDoctor(1, "Sarah Johnson")
	repo.addDoctor(2, "Michael Chen")
	createUC, updateUC, _ := newUsecases(repo)

	ap := book(t, createUC, john, 1, time.Now().Add(24*time.Hour), "")

	_, err := updateUC.Execute(context.Background(), drChen, ap.ID, domain.StatusConfirmed)
	assert.True(t, httperr.IsBusiness(err, "forbidden"), "got %v", err)
}

func TestUpdateUnknownAppointment(t *testing.T) {
	repo := newFakeRepo()
	repo.addDoctor(1, "Sarah Johnson")
	_, updateUC, _ := newUsecases(repo)

	_, err := updateUC.Execute(context.Background(), drSarah, 404, domain.StatusConfirmed)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"), "got %v", err)
}

// Terminal appointments reject any further transition.
func TestUpdateTerminalAppointmentFails(t *testing.T) {
	repo := newFakeRepo()
	repo.addDoctor(1, "Sarah Johnson")
	createUC, updateUC, _ := newUsecases(repo)

	ap := book(t, createUC, john, 1, time.Now().Add(24*time.Hour), "")

	_, err := updateUC.Execute(context.Background(), drSarah, ap.ID, domain.StatusConfirmed)
	require.NoError(t, err)

	for _, target := range []domain.Status{domain.StatusConfirmed, domain.StatusCancelled} {
		_, err := updateUC.Execute(context.Background(), drSarah, ap.ID, target)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"), "target=%s got %v", target, err)
	}

	stored, _ := repo.GetAppointmentByID(context.Background(), ap.ID)
	assert.Equal(t, string(domain.StatusConfirmed), stored.Status)
}

func TestUpdateToPendingRejected(t *testing.T) {
	repo := newFakeRepo()
	repo.addDoctor(1, "Sarah Johnson")
	createUC, updateUC, _ := newUsecases(repo)

	ap := book(t, createUC, john, 1, time.Now().Add(24*time.Hour), "")

	_, err := updateUC.Execute(context.Background(), drSarah, ap.ID, domain.StatusPending)
	assert.True(t, httperr.IsBusiness(err, "invalid_status"), "got %v", err)
}

// ------------------------------------------------------
// listing
// ------------------------------------------------------

func TestListScopedToPatientIdentity(t *testing.T) {
	repo := newFakeRepo()
	repo.addDoctor(1, "Sarah Johnson")
	createUC, _, listUC := newUsecases(repo)

	tomorrow := time.Now().Add(24 * time.Hour)
	mine := book(t, createUC, john, 1, tomorrow, "mine")
	book(t, createUC, emma, 1, tomorrow, "not mine")

	// No filter combination widens the scope past the actor's own rows.
	for _, opts := range []ListOptions{{}, {Status: "PENDING"}, {Date: tomorrow.Format("2006-01-02")}} {
		out, err := listUC.Execute(context.Background(), john, opts)
		require.NoError(t, err)
		require.Len(t, out, 1, "opts=%+v", opts)
		assert.Equal(t, mine.ID, out[0].ID)
	}
}

func TestListScopedToDoctorIdentity(t *testing.T) {
	repo := newFakeRepo()
	repo.addDoctor(1, "Sarah Johnson")
	repo.addDoctor(2, "Michael Chen")
	createUC, _, listUC := newUsecases(repo)

	tomorrow := time.Now().Add(24 * time.Hour)
	forSarah := book(t, createUC, john, 1, tomorrow, "")
	book(t, createUC, john, 2, tomorrow, "")

	out, err := listUC.Execute(context.Background(), drSarah, ListOptions{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, forSarah.ID, out[0].ID)
}

func TestListTodayFilter(t *testing.T) {
	repo := newFakeRepo()
	repo.addDoctor(1, "Sarah Johnson")
	createUC, _, listUC := newUsecases(repo)

	soon := time.Now().UTC().Add(time.Minute)
	nextWeek := time.Now().UTC().Add(7 * 24 * time.Hour)
	today := book(t, createUC, john, 1, soon, "")
	book(t, createUC, john, 1, nextWeek, "")

	out, err := listUC.Execute(context.Background(), john, ListOptions{Date: "today"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, today.ID, out[0].ID)
}

func TestListRejectsBadFilters(t *testing.T) {
	repo := newFakeRepo()
	_, _, listUC := newUsecases(repo)

	_, err := listUC.Execute(context.Background(), john, ListOptions{Status: "DONE"})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"), "got %v", err)

	_, err = listUC.Execute(context.Background(), john, ListOptions{Date: "not-a-date"})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"), "got %v", err)
}
