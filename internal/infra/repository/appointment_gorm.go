package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/Pranaysalavadhi/medic-connect-online/internal/domain/appointment"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/models"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/timezone"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Doctor directory
// --------------------------------------------------

func (r *AppointmentGormRepository) GetDoctorByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var doctor models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, models.RoleDoctor).
		First(&doctor).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Scoped listings
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPatient(
	ctx context.Context,
	patientID uint,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Patient").
		Where("patient_id = ?", patientID)

	return r.list(applyFilter(q, filter))
}

func (r *AppointmentGormRepository) ListAppointmentsForDoctor(
	ctx context.Context,
	doctorID uint,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Patient").
		Where("doctor_id = ?", doctorID)

	return r.list(applyFilter(q, filter))
}

func applyFilter(q *gorm.DB, filter domain.ListFilter) *gorm.DB {
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.Day != nil {
		start, end := timezone.DayBounds(*filter.Day)
		q = q.Where("appointment_time >= ? AND appointment_time < ?", start, end)
	}
	return q
}

func (r *AppointmentGormRepository) list(q *gorm.DB) ([]models.Appointment, error) {
	var apps []models.Appointment
	if err := q.
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
