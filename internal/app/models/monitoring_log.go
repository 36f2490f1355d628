package models

import "time"

// MonitoringLog records a user action reported by a client.
type MonitoringLog struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}
