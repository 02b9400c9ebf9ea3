package dto

import (
	"github.com/burnboard/models"
)

// CreateProjectRequest represents the request payload for creating a new project.
// Milestones are never part of this payload; a project starts with an empty list.
type CreateProjectRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	StartDate   string  `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate     string  `json:"endDate" binding:"required,datetime=2006-01-02"`
	Budget      float64 `json:"budget" binding:"gte=0"`
	HourlyRate  float64 `json:"hourlyRate" binding:"gte=0"`
}

// UpdateProjectRequest represents a partial update; only fields present in
// the payload are overwritten. Milestones cannot be changed through this path.
type UpdateProjectRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	StartDate   *string  `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate     *string  `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Budget      *float64 `json:"budget" binding:"omitempty,gte=0"`
	HourlyRate  *float64 `json:"hourlyRate" binding:"omitempty,gte=0"`
}

// Fields maps the provided values onto column names for a shallow merge.
func (r UpdateProjectRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.StartDate != nil {
		fields["start_date"] = *r.StartDate
	}
	if r.EndDate != nil {
		fields["end_date"] = *r.EndDate
	}
	if r.Budget != nil {
		fields["budget"] = *r.Budget
	}
	if r.HourlyRate != nil {
		fields["hourly_rate"] = *r.HourlyRate
	}
	return fields
}

// MilestoneStatsItem carries the derived figures for one milestone.
type MilestoneStatsItem struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	DueDate       string  `json:"dueDate"`
	Budget        float64 `json:"budget"`
	Burn          float64 `json:"burn"`
	OverBudget    bool    `json:"overBudget"`
	StoryProgress float64 `json:"storyProgress"`
	IsDone        bool    `json:"isDone"`
}

// ProjectStatsResponse represents the dashboard figures for one project.
// Everything here is derived on demand and never persisted.
type ProjectStatsResponse struct {
	ProjectID        string                          `json:"projectId"`
	Title            string                          `json:"title"`
	Budget           float64                         `json:"budget"`
	HourlyRate       float64                         `json:"hourlyRate"`
	Burn             float64                         `json:"burn"`
	OverBudget       bool                            `json:"overBudget"`
	TotalStories     int                             `json:"totalStories"`
	CompletedStories int                             `json:"completedStories"`
	StoryProgress    float64                         `json:"storyProgress"`
	ResourceHours    map[models.ResourceType]float64 `json:"resourceHours"`
	Milestones       []MilestoneStatsItem            `json:"milestones"`
}
