package models

import "time"

// Backup tracks a snapshot copy of the database file.
type Backup struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"` // UUID
	FileName  string    `gorm:"size:255;not null" json:"file_name"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}
