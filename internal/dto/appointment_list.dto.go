package dto

import "time"

type AppointmentListDTO struct {
	ID              uint      `json:"id"`
	DoctorID        uint      `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name"`
	PatientName     string    `json:"patient_name"`
	AppointmentTime time.Time `json:"appointment_time"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
}
