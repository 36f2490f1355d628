package models

import "time"

// Class is a scheduled teaching slot for a module.
type Class struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	ModuleID      int64     `json:"module_id"`
	Venue         string    `json:"venue"`
	ScheduledTime string    `json:"scheduled_time"`
	LecturerID    *int64    `json:"lecturer_id"`
	CreatedAt     time.Time `json:"created_at"`
}
