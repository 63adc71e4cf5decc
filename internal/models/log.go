package models

import "time"

// AuditLog records every API call for the history page.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Method    string    `gorm:"size:16" json:"method"`
	Path      string    `gorm:"size:255" json:"path"`
	Status    int       `json:"status"`
	LatencyMS int64     `gorm:"column:latency_ms" json:"latency_ms"`
	IP        string    `gorm:"size:64" json:"ip"`
	CreatedAt time.Time `json:"created_at"`
}
