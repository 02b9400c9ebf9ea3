package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/burnboard/dto"
	"github.com/burnboard/lib/metrics"
	"github.com/burnboard/models"
)

// ListProjects returns projects newest-first. With ?all=true every owner's
// projects are included; otherwise only the caller's own.
func (a *API) ListProjects(c *gin.Context) {
	userID := actingUserID(c)

	includeAll := c.Query("all") == "true"

	projects, err := a.projects.ListProjects(userID, includeAll)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   projects,
	})
}

// GetProject returns one project with its embedded milestones
func (a *API) GetProject(c *gin.Context) {
	userID := actingUserID(c)

	projectID := c.Param("id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID is required"})
		return
	}

	project, err := a.projects.GetProject(projectID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Project not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   project,
	})
}

// CreateProject creates a new project owned by the current user
func (a *API) CreateProject(c *gin.Context) {
	userID := actingUserID(c)

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	project, err := a.projects.CreateProject(userID, models.Project{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		HourlyRate:  req.HourlyRate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.IncrementProjectMutation("create_project")
	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   project,
	})
}

// UpdateProject overwrites only the fields present in the payload
func (a *API) UpdateProject(c *gin.Context) {
	userID := actingUserID(c)

	projectID := c.Param("id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID is required"})
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	if err := a.projects.UpdateProject(projectID, userID, req.Fields()); err != nil {
		respondError(c, err)
		return
	}

	metrics.IncrementProjectMutation("update_project")
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Project updated successfully",
	})
}

// DeleteProject removes a project and its milestones
func (a *API) DeleteProject(c *gin.Context) {
	userID := actingUserID(c)

	projectID := c.Param("id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID is required"})
		return
	}

	if err := a.projects.DeleteProject(projectID, userID); err != nil {
		respondError(c, err)
		return
	}

	metrics.IncrementProjectMutation("delete_project")
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Project deleted successfully",
	})
}

// GetProjectStats returns the derived burn and progress figures
func (a *API) GetProjectStats(c *gin.Context) {
	userID := actingUserID(c)

	projectID := c.Param("id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID is required"})
		return
	}

	stats, err := a.projects.ProjectStats(projectID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   stats,
	})
}
