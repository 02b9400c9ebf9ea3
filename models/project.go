package models

import (
	"time"

	"gorm.io/datatypes"
)

// Project represents a budgeted project with its embedded milestones.
// The whole milestones list is stored as one jsonb column and is always
// read and rewritten as a unit; there is no milestones table.
// Dates are YYYY-MM-DD strings, so lexicographic order is chronological.
type Project struct {
	ID          string                         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title       string                         `json:"title" gorm:"not null"`
	Description string                         `json:"description" gorm:"default:null"`
	StartDate   string                         `json:"startDate" gorm:"not null;index"`
	EndDate     string                         `json:"endDate" gorm:"not null"`
	Budget      float64                        `json:"budget" gorm:"not null;default:0"`
	HourlyRate  float64                        `json:"hourlyRate" gorm:"not null;default:0"`
	Milestones  datatypes.JSONSlice[Milestone] `json:"milestones" gorm:"type:jsonb"`
	UserID      string                         `json:"userId" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time                      `json:"createdAt"`
	UpdatedAt   time.Time                      `json:"updatedAt"`

	// IsOwner is derived per fetch, never stored
	IsOwner bool `json:"isOwner" gorm:"-"`
}
