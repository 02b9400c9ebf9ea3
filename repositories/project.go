package repositories

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/burnboard/database"
	"github.com/burnboard/models"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct{}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{}
}

// Find retrieves projects, optionally filtered by owner and ordered by
// start date descending. An empty userID means all owners.
func (r *ProjectRepository) Find(userID string, ordered bool) ([]models.Project, error) {
	var projects []models.Project

	db := database.DB.Model(&models.Project{})
	if userID != "" {
		db = db.Where("user_id = ?", userID)
	}
	if ordered {
		db = db.Order("start_date DESC")
	}

	result := db.Find(&projects)
	return projects, result.Error
}

// FindByID retrieves a project by its ID
func (r *ProjectRepository) FindByID(id string) (models.Project, error) {
	var project models.Project
	result := database.DB.First(&project, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return models.Project{}, models.ErrNotFound
	}
	return project, result.Error
}

// Create inserts a new project into the database
func (r *ProjectRepository) Create(project models.Project) (models.Project, error) {
	result := database.DB.Create(&project)
	return project, result.Error
}

// UpdateFields overwrites only the given columns on a project record.
func (r *ProjectRepository) UpdateFields(id string, fields map[string]interface{}) error {
	result := database.DB.Model(&models.Project{}).Where("id = ?", id).Updates(fields)
	return result.Error
}

// ReplaceMilestones rewrites the whole embedded milestones list. There is
// no per-entry update path; the list is the unit of persistence.
func (r *ProjectRepository) ReplaceMilestones(id string, milestones []models.Milestone) error {
	result := database.DB.Model(&models.Project{}).Where("id = ?", id).
		Update("milestones", datatypes.NewJSONSlice(milestones))
	return result.Error
}

// Delete removes a project from the database
func (r *ProjectRepository) Delete(id string) error {
	result := database.DB.Delete(&models.Project{}, "id = ?", id)
	return result.Error
}
