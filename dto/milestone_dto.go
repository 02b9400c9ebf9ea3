package dto

import (
	"github.com/burnboard/models"
)

// ResourceInput is one staffing entry on a milestone payload. Negative
// quantities are rejected here, at the input edge, not by the model.
type ResourceInput struct {
	Type     models.ResourceType `json:"type" binding:"required,oneof=Developer PM QA Design Devops Content"`
	Quantity float64             `json:"quantity" binding:"gte=0"`
}

// MilestoneRequest represents the payload for adding or replacing a
// milestone. Updates are full replacements, not field merges.
type MilestoneRequest struct {
	Title            string          `json:"title" binding:"required"`
	DueDate          string          `json:"dueDate" binding:"required,datetime=2006-01-02"`
	Budget           float64         `json:"budget" binding:"gte=0"`
	Resources        []ResourceInput `json:"resources" binding:"dive"`
	TotalStories     int             `json:"totalStories" binding:"gte=0"`
	CompletedStories int             `json:"completedStories" binding:"gte=0"`
	IsDone           bool            `json:"isDone"`
}

// ToModel converts the payload into a milestone. The ID is left empty for
// the service to mint (add) or overwrite (update).
func (r MilestoneRequest) ToModel() models.Milestone {
	resources := make([]models.Resource, 0, len(r.Resources))
	for _, resource := range r.Resources {
		resources = append(resources, models.Resource{
			Type:     resource.Type,
			Quantity: resource.Quantity,
		})
	}

	return models.Milestone{
		Title:            r.Title,
		DueDate:          r.DueDate,
		Budget:           r.Budget,
		Resources:        resources,
		TotalStories:     r.TotalStories,
		CompletedStories: r.CompletedStories,
		IsDone:           r.IsDone,
	}
}
