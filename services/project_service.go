package services

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/burnboard/dto"
	"github.com/burnboard/models"
	"github.com/burnboard/repositories"
	"github.com/burnboard/utils"
)

// ProjectStore is the persistence surface the service needs. It is satisfied
// by repositories.ProjectRepository and mocked in tests.
type ProjectStore interface {
	Find(userID string, ordered bool) ([]models.Project, error)
	FindByID(id string) (models.Project, error)
	Create(project models.Project) (models.Project, error)
	UpdateFields(id string, fields map[string]interface{}) error
	ReplaceMilestones(id string, milestones []models.Milestone) error
	Delete(id string) error
}

// ProjectService handles business logic for projects and their milestones.
// The acting identity is passed explicitly into every call; nothing here
// reads ambient session state.
type ProjectService struct {
	store  ProjectStore
	logger *zap.Logger
}

// NewProjectService creates a new project service instance
func NewProjectService(store ProjectStore, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		store:  store,
		logger: logger,
	}
}

// NewDefaultProjectService wires the service against the real repository.
func NewDefaultProjectService(logger *zap.Logger) *ProjectService {
	return NewProjectService(repositories.NewProjectRepository(), logger)
}

// ListProjects returns projects ordered by start date descending, newest
// first. With includeAllOwners every authenticated user sees everything;
// otherwise only the caller's own projects are listed. A missing identity
// yields an empty list, not an error.
func (s *ProjectService) ListProjects(userID string, includeAllOwners bool) ([]models.Project, error) {
	if userID == "" {
		return []models.Project{}, nil
	}

	filter := userID
	if includeAllOwners {
		filter = ""
	}

	projects, err := s.store.Find(filter, true)
	if err != nil {
		// The store may refuse the filtered+ordered query shape; fetch
		// unordered and sort here. Dates are YYYY-MM-DD strings, so this
		// produces the same ordering as the store's index would.
		s.logger.Warn("Ordered project query failed, sorting client-side", zap.Error(err))

		projects, err = s.store.Find(filter, false)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrFetch, err)
		}
		sort.SliceStable(projects, func(i, j int) bool {
			return projects[i].StartDate > projects[j].StartDate
		})
	}

	for i := range projects {
		projects[i].IsOwner = projects[i].UserID == userID
	}
	return projects, nil
}

// GetProject fetches one project and attaches the derived owner flag.
// An absent record returns (nil, nil), not an error.
func (s *ProjectService) GetProject(id, userID string) (*models.Project, error) {
	project, err := s.store.FindByID(id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrFetch, err)
	}

	project.IsOwner = project.UserID == userID
	return &project, nil
}

// CreateProject stamps the acting identity as owner and starts the project
// with an empty milestones list.
func (s *ProjectService) CreateProject(userID string, project models.Project) (models.Project, error) {
	if userID == "" {
		return models.Project{}, models.ErrAuthRequired
	}

	project.UserID = userID
	project.Milestones = datatypes.JSONSlice[models.Milestone]{}

	created, err := s.store.Create(project)
	if err != nil {
		return models.Project{}, fmt.Errorf("%w: %v", models.ErrPersist, err)
	}

	s.logger.Info("Project created",
		zap.String("id", created.ID),
		zap.String("user_id", userID),
	)

	created.IsOwner = true
	return created, nil
}

// UpdateProject overwrites only the provided fields (shallow merge). The
// milestones list is never touched by this path.
func (s *ProjectService) UpdateProject(id, userID string, fields map[string]interface{}) error {
	if userID == "" {
		return models.ErrAuthRequired
	}

	if _, err := s.fetchOwned(id, userID); err != nil {
		return err
	}

	// These columns are owned by other paths
	delete(fields, "milestones")
	delete(fields, "user_id")
	delete(fields, "id")

	if len(fields) == 0 {
		return nil
	}

	if err := s.store.UpdateFields(id, fields); err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersist, err)
	}
	return nil
}

// DeleteProject removes a project and its embedded milestones. Irreversible.
func (s *ProjectService) DeleteProject(id, userID string) error {
	if userID == "" {
		return models.ErrAuthRequired
	}

	if _, err := s.fetchOwned(id, userID); err != nil {
		return err
	}

	if err := s.store.Delete(id); err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersist, err)
	}

	s.logger.Info("Project deleted",
		zap.String("id", id),
		zap.String("user_id", userID),
	)
	return nil
}

// ProjectStats derives the dashboard figures for one project. All values
// are computed on demand from the stored record and never persisted.
func (s *ProjectService) ProjectStats(id, userID string) (dto.ProjectStatsResponse, error) {
	project, err := s.store.FindByID(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return dto.ProjectStatsResponse{}, models.ErrNotFound
		}
		return dto.ProjectStatsResponse{}, fmt.Errorf("%w: %v", models.ErrFetch, err)
	}

	milestones := []models.Milestone(project.Milestones)
	burn := utils.ProjectBurn(milestones, project.HourlyRate)
	completed, total := utils.ProjectStories(milestones)

	stats := dto.ProjectStatsResponse{
		ProjectID:        project.ID,
		Title:            project.Title,
		Budget:           project.Budget,
		HourlyRate:       project.HourlyRate,
		Burn:             burn,
		OverBudget:       utils.IsOverBudget(burn, project.Budget),
		TotalStories:     total,
		CompletedStories: completed,
		StoryProgress:    utils.StoryProgress(completed, total),
		ResourceHours:    utils.ResourceHours(milestones),
		Milestones:       make([]dto.MilestoneStatsItem, 0, len(milestones)),
	}

	for _, milestone := range milestones {
		milestoneBurn := utils.MilestoneBurn(milestone.Resources, project.HourlyRate)
		stats.Milestones = append(stats.Milestones, dto.MilestoneStatsItem{
			ID:            milestone.ID,
			Title:         milestone.Title,
			DueDate:       milestone.DueDate,
			Budget:        milestone.Budget,
			Burn:          milestoneBurn,
			OverBudget:    utils.IsOverBudget(milestoneBurn, milestone.Budget),
			StoryProgress: utils.StoryProgress(milestone.CompletedStories, milestone.TotalStories),
			IsDone:        milestone.IsDone,
		})
	}

	return stats, nil
}

// fetchOwned re-runs the ownership sequence on every call: fetch the fresh
// record, verify presence, then verify ownership, in that order. The
// decision is never cached.
func (s *ProjectService) fetchOwned(id, userID string) (models.Project, error) {
	project, err := s.store.FindByID(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Project{}, models.ErrNotFound
		}
		return models.Project{}, fmt.Errorf("%w: %v", models.ErrFetch, err)
	}

	if project.UserID != userID {
		return models.Project{}, models.ErrNotOwner
	}
	return project, nil
}
