package models

import "time"

// DoctorProfile is the public directory entry behind a DOCTOR user.
type DoctorProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex" json:"user_id"`

	Specialty    string `gorm:"size:100;not null" json:"specialty"`
	Availability string `gorm:"size:100" json:"availability"`
	Description  string `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
