package utils

import (
	"github.com/burnboard/models"
)

// MilestoneBurn returns the cost of a milestone's staffing at the given
// project-wide hourly rate. An empty resource list yields 0. Negative
// inputs are not rejected and flow through to the result.
func MilestoneBurn(resources []models.Resource, hourlyRate float64) float64 {
	var total float64
	for _, resource := range resources {
		total += resource.Quantity * hourlyRate
	}
	return total
}

// ProjectBurn returns the summed burn of all milestones. Per-milestone rate
// overrides are not supported; the single project rate applies throughout.
func ProjectBurn(milestones []models.Milestone, hourlyRate float64) float64 {
	var total float64
	for _, milestone := range milestones {
		total += MilestoneBurn(milestone.Resources, hourlyRate)
	}
	return total
}

// StoryProgress returns the completion percentage, clamped at 100 so a
// stored completed count above total still displays as fully complete.
// A zero total yields 0.
func StoryProgress(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	progress := float64(completed) / float64(total) * 100
	if progress > 100 {
		return 100
	}
	return progress
}

// IsOverBudget reports whether burn strictly exceeds budget. It applies
// independently at project and milestone level with no netting between them.
func IsOverBudget(burn, budget float64) bool {
	return burn > budget
}

// ProjectStories sums story counters across all milestones.
func ProjectStories(milestones []models.Milestone) (completed, total int) {
	for _, milestone := range milestones {
		completed += milestone.CompletedStories
		total += milestone.TotalStories
	}
	return completed, total
}

// ResourceHours aggregates staffing hours by resource type across all
// milestones. Duplicate type entries within one milestone are summed.
func ResourceHours(milestones []models.Milestone) map[models.ResourceType]float64 {
	hours := make(map[models.ResourceType]float64)
	for _, milestone := range milestones {
		for _, resource := range milestone.Resources {
			hours[resource.Type] += resource.Quantity
		}
	}
	return hours
}
