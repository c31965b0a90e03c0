package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DoctorID uint `gorm:"index" json:"doctor_id"`
	Doctor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"doctor"`

	PatientID uint `gorm:"index" json:"patient_id"`
	Patient   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	AppointmentTime time.Time `json:"appointment_time"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
