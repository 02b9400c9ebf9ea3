package models

// ResourceType represents a staffing category that can be assigned to a milestone
type ResourceType string

const (
	ResourceDeveloper ResourceType = "Developer"
	ResourcePM        ResourceType = "PM"
	ResourceQA        ResourceType = "QA"
	ResourceDesign    ResourceType = "Design"
	ResourceDevops    ResourceType = "Devops"
	ResourceContent   ResourceType = "Content"
)

// Resource is a staffing entry on a milestone. Quantity is in hours.
type Resource struct {
	Type     ResourceType `json:"type"`
	Quantity float64      `json:"quantity"`
}

// Milestone is embedded in its parent Project and has no table of its own.
// IDs are minted by the service when the milestone is added, not by the store.
type Milestone struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	DueDate          string     `json:"dueDate"` // YYYY-MM-DD, compared only as an ordering key
	Budget           float64    `json:"budget"`
	Resources        []Resource `json:"resources"`
	TotalStories     int        `json:"totalStories"`
	CompletedStories int        `json:"completedStories"`
	IsDone           bool       `json:"isDone"`
}
