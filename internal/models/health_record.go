package models

import "time"

// HealthRecord points at an uploaded document; the bytes live in object
// storage under StorageKey. Deletion removes the row, there is no status
// lifecycle.
type HealthRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint `gorm:"index" json:"patient_id"`

	FileName   string `gorm:"size:255;not null" json:"file_name"`
	FileType   string `gorm:"size:50" json:"file_type"`
	FileURL    string `gorm:"size:512" json:"file_url"`
	StorageKey string `gorm:"size:512" json:"-"`

	UploadDate time.Time `json:"upload_date"`
}
