package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/burnboard/models"
)

// MockProjectStore
type MockProjectStore struct {
	mock.Mock
}

func (m *MockProjectStore) Find(userID string, ordered bool) ([]models.Project, error) {
	args := m.Called(userID, ordered)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectStore) FindByID(id string) (models.Project, error) {
	args := m.Called(id)
	return args.Get(0).(models.Project), args.Error(1)
}

func (m *MockProjectStore) Create(project models.Project) (models.Project, error) {
	args := m.Called(project)
	return args.Get(0).(models.Project), args.Error(1)
}

func (m *MockProjectStore) UpdateFields(id string, fields map[string]interface{}) error {
	args := m.Called(id, fields)
	return args.Error(0)
}

func (m *MockProjectStore) ReplaceMilestones(id string, milestones []models.Milestone) error {
	args := m.Called(id, milestones)
	return args.Error(0)
}

func (m *MockProjectStore) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func newTestService(store *MockProjectStore) *ProjectService {
	return NewProjectService(store, zap.NewNop())
}

func TestListProjectsWithoutIdentity(t *testing.T) {
	store := new(MockProjectStore)
	service := newTestService(store)

	projects, err := service.ListProjects("", false)
	require.NoError(t, err)
	require.Empty(t, projects)
	store.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestListProjectsOwnerFlag(t *testing.T) {
	store := new(MockProjectStore)
	service := newTestService(store)

	// includeAllOwners drops the owner filter but keeps the ordering
	store.On("Find", "", true).Return([]models.Project{
		{ID: "p1", UserID: "user1", StartDate: "2024-03-01"},
		{ID: "p2", UserID: "user2", StartDate: "2024-02-01"},
	}, nil).Once()

	projects, err := service.ListProjects("user1", true)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.True(t, projects[0].IsOwner)
	require.False(t, projects[1].IsOwner)
	store.AssertExpectations(t)
}

func TestListProjectsOrderingFallback(t *testing.T) {
	store := new(MockProjectStore)
	service := newTestService(store)

	// The store refuses the filtered+ordered query shape; the unordered
	// fetch plus client-side sort must yield the same newest-first order.
	store.On("Find", "user1", true).Return(nil, errors.New("no composite index")).Once()
	store.On("Find", "user1", false).Return([]models.Project{
		{ID: "old", UserID: "user1", StartDate: "2023-01-10"},
		{ID: "new", UserID: "user1", StartDate: "2024-06-01"},
		{ID: "mid", UserID: "user1", StartDate: "2023-09-15"},
	}, nil).Once()

	projects, err := service.ListProjects("user1", false)
	require.NoError(t, err)
	require.Equal(t, []string{"new", "mid", "old"}, []string{projects[0].ID, projects[1].ID, projects[2].ID})
	store.AssertExpectations(t)
}

func TestListProjectsFetchError(t *testing.T) {
	store := new(MockProjectStore)
	service := newTestService(store)

	store.On("Find", "user1", true).Return(nil, errors.New("connection refused")).Once()
	store.On("Find", "user1", false).Return(nil, errors.New("connection refused")).Once()

	_, err := service.ListProjects("user1", false)
	require.ErrorIs(t, err, models.ErrFetch)
}

func TestGetProjectAbsentIsNotAnError(t *testing.T) {
	store := new(MockProjectStore)
	service := newTestService(store)

	store.On("FindByID", "missing").Return(models.Project{}, models.ErrNotFound).Once()

	project, err := service.GetProject("missing", "user1")
	require.NoError(t, err)
	require.Nil(t, project)
}

func TestGetProjectAttachesOwnerFlag(t *testing.T) {
	store := new(MockProjectStore)
	service := newTestService(store)

	store.On("FindByID", "p1").Return(models.Project{ID: "p1", UserID: "user2"}, nil).Once()

	project, err := service.GetProject("p1", "user1")
	require.NoError(t, err)
	require.NotNil(t, project)
	require.False(t, project.IsOwner)
}

func TestCreateProjectRequiresIdentity(t *testing.T) {
	store := new(MockProjectStore)
	service := newTestService(store)

	_, err := service.CreateProject("", models.Project{Title: "x"})
	require.ErrorIs(t, err, models.ErrAuthRequired)
	store.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateProjectStampsOwner(t *testing.T) {
	store := new(MockProjectStore)
	service := newTestService(store)

	var created models.Project
	store.On("Create", mock.AnythingOfType("models.Project")).Run(func(args mock.Arguments) {
		created = args.Get(0).(models.Project)
	}).Return(models.Project{ID: "p1", UserID: "user1"}, nil).Once()

	project, err := service.CreateProject("user1", models.Project{Title: "Site relaunch", UserID: "someone-else"})
	require.NoError(t, err)
	require.Equal(t, "user1", created.UserID)
	require.Empty(t, created.Milestones)
	require.NotNil(t, created.Milestones)
	require.True(t, project.IsOwner)
}

func TestUpdateProjectNotFoundBeforeOwnership(t *testing.T) {
	store := new(MockProjectStore)
	service := newTestService(store)

	// Existence is checked first; ownership cannot be evaluated without
	// the record.
	store.On("FindByID", "missing").Return(models.Project{}, models.ErrNotFound).Once()

	err := service.UpdateProject("missing", "stranger", map[string]interface{}{"title": "x"})
	require.ErrorIs(t, err, models.ErrNotFound)
	store.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything)
}

func TestUpdateProjectRejectsNonOwner(t *testing.T) {
	store := new(MockProjectStore)
	service := newTestService(store)

	store.On("FindByID", "p1").Return(models.Project{ID: "p1", UserID: "user1"}, nil).Once()

	err := service.UpdateProject("p1", "user2", map[string]interface{}{"title": "x"})
	require.ErrorIs(t, err, models.ErrNotOwner)
	store.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything)
}

func TestUpdateProjectNeverTouchesMilestones(t *testing.T) {
	store := new(MockProjectStore)
	service := newTestService(store)

	store.On("FindByID", "p1").Return(models.Project{ID: "p1", UserID: "user1"}, nil).Once()

	var fields map[string]interface{}
	store.On("UpdateFields", "p1", mock.Anything).Run(func(args mock.Arguments) {
		fields = args.Get(1).(map[string]interface{})
	}).Return(nil).Once()

	err := service.UpdateProject("p1", "user1", map[string]interface{}{
		"title":      "renamed",
		"milestones": []models.Milestone{{ID: "sneaky"}},
		"user_id":    "user2",
	})
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"title": "renamed"}, fields)
}

func TestDeleteProjectChecksOwnershipEveryCall(t *testing.T) {
	store := new(MockProjectStore)
	service := newTestService(store)

	store.On("FindByID", "p1").Return(models.Project{ID: "p1", UserID: "user1"}, nil).Twice()
	store.On("Delete", "p1").Return(nil).Twice()

	require.NoError(t, service.DeleteProject("p1", "user1"))
	require.NoError(t, service.DeleteProject("p1", "user1"))
	store.AssertExpectations(t)
}

func TestProjectStatsDerivesFigures(t *testing.T) {
	store := new(MockProjectStore)
	service := newTestService(store)

	project := models.Project{
		ID:         "p1",
		Title:      "Site relaunch",
		UserID:     "user1",
		Budget:     1000,
		HourlyRate: 50,
	}
	project.Milestones = append(project.Milestones,
		models.Milestone{
			ID:     "m1",
			Budget: 800,
			Resources: []models.Resource{
				{Type: models.ResourceDeveloper, Quantity: 10},
				{Type: models.ResourceQA, Quantity: 5},
			},
			TotalStories:     10,
			CompletedStories: 5,
		},
		models.Milestone{
			ID:     "m2",
			Budget: 400,
			Resources: []models.Resource{
				{Type: models.ResourceDeveloper, Quantity: 10},
			},
			TotalStories:     4,
			CompletedStories: 4,
		},
	)
	store.On("FindByID", "p1").Return(project, nil).Once()

	stats, err := service.ProjectStats("p1", "user2")
	require.NoError(t, err)

	require.InDelta(t, 1250, stats.Burn, 1e-9)
	require.True(t, stats.OverBudget)
	require.Equal(t, 14, stats.TotalStories)
	require.Equal(t, 9, stats.CompletedStories)
	require.InDelta(t, 18, stats.ResourceHours[models.ResourceDeveloper], 1e-9)

	require.Len(t, stats.Milestones, 2)
	require.InDelta(t, 750, stats.Milestones[0].Burn, 1e-9)
	require.False(t, stats.Milestones[0].OverBudget)
	require.InDelta(t, 50, stats.Milestones[0].StoryProgress, 1e-9)
	require.InDelta(t, 100, stats.Milestones[1].StoryProgress, 1e-9)
	require.True(t, stats.Milestones[1].OverBudget)
}

func TestProjectStatsNotFound(t *testing.T) {
	store := new(MockProjectStore)
	service := newTestService(store)

	store.On("FindByID", "missing").Return(models.Project{}, models.ErrNotFound).Once()

	_, err := service.ProjectStats("missing", "user1")
	require.ErrorIs(t, err, models.ErrNotFound)
}
