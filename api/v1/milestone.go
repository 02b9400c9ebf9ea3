package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/burnboard/dto"
	"github.com/burnboard/lib/metrics"
)

// AddMilestone appends a milestone to a project the caller owns
func (a *API) AddMilestone(c *gin.Context) {
	userID := actingUserID(c)

	projectID := c.Param("id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID is required"})
		return
	}

	var req dto.MilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	milestone, err := a.projects.AddMilestone(projectID, userID, req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.IncrementProjectMutation("add_milestone")
	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   milestone,
	})
}

// UpdateMilestone replaces a milestone wholesale
func (a *API) UpdateMilestone(c *gin.Context) {
	userID := actingUserID(c)

	projectID := c.Param("id")
	milestoneID := c.Param("milestoneId")
	if projectID == "" || milestoneID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID and milestone ID are required"})
		return
	}

	var req dto.MilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	if err := a.projects.UpdateMilestone(projectID, userID, milestoneID, req.ToModel()); err != nil {
		respondError(c, err)
		return
	}

	metrics.IncrementProjectMutation("update_milestone")
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Milestone updated successfully",
	})
}

// DeleteMilestone removes a milestone from a project the caller owns
func (a *API) DeleteMilestone(c *gin.Context) {
	userID := actingUserID(c)

	projectID := c.Param("id")
	milestoneID := c.Param("milestoneId")
	if projectID == "" || milestoneID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID and milestone ID are required"})
		return
	}

	if err := a.projects.DeleteMilestone(projectID, userID, milestoneID); err != nil {
		respondError(c, err)
		return
	}

	metrics.IncrementProjectMutation("delete_milestone")
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Milestone deleted successfully",
	})
}
