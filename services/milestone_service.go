package services

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/burnboard/models"
)

// Milestone operations share the project mutation sequence: fetch fresh,
// verify presence, verify ownership, then rewrite the whole embedded list.
// Two concurrent writers race at the rewrite step and the later write wins
// at list granularity; there is no optimistic-concurrency token.

// AddMilestone appends a milestone to a project the caller owns. The ID is
// minted here, not by the store, and is immutable afterwards.
func (s *ProjectService) AddMilestone(projectID, userID string, milestone models.Milestone) (models.Milestone, error) {
	if userID == "" {
		return models.Milestone{}, models.ErrAuthRequired
	}

	project, err := s.fetchOwned(projectID, userID)
	if err != nil {
		return models.Milestone{}, err
	}

	if milestone.ID == "" {
		milestone.ID = uuid.NewString()
	}
	if milestone.Resources == nil {
		milestone.Resources = []models.Resource{}
	}

	updated := append([]models.Milestone(project.Milestones), milestone)
	if err := s.store.ReplaceMilestones(projectID, updated); err != nil {
		return models.Milestone{}, fmt.Errorf("%w: %v", models.ErrPersist, err)
	}

	s.logger.Info("Milestone added",
		zap.String("project_id", projectID),
		zap.String("milestone_id", milestone.ID),
	)
	return milestone, nil
}

// UpdateMilestone replaces the entry whose ID matches, wholesale. When no
// entry matches the list is rewritten unchanged; unlike the project-level
// operations this is a silent no-op, not a not-found error.
func (s *ProjectService) UpdateMilestone(projectID, userID, milestoneID string, milestone models.Milestone) error {
	if userID == "" {
		return models.ErrAuthRequired
	}

	project, err := s.fetchOwned(projectID, userID)
	if err != nil {
		return err
	}

	milestone.ID = milestoneID
	if milestone.Resources == nil {
		milestone.Resources = []models.Resource{}
	}

	updated := make([]models.Milestone, len(project.Milestones))
	for i, current := range project.Milestones {
		if current.ID == milestoneID {
			updated[i] = milestone
		} else {
			updated[i] = current
		}
	}

	if err := s.store.ReplaceMilestones(projectID, updated); err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersist, err)
	}
	return nil
}

// DeleteMilestone filters the entry out and rewrites the list. Removing an
// id that is not present is a silent no-op.
func (s *ProjectService) DeleteMilestone(projectID, userID, milestoneID string) error {
	if userID == "" {
		return models.ErrAuthRequired
	}

	project, err := s.fetchOwned(projectID, userID)
	if err != nil {
		return err
	}

	updated := make([]models.Milestone, 0, len(project.Milestones))
	for _, current := range project.Milestones {
		if current.ID != milestoneID {
			updated = append(updated, current)
		}
	}

	if err := s.store.ReplaceMilestones(projectID, updated); err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersist, err)
	}
	return nil
}
