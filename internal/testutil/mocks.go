// Package testutil provides hand-written repository mocks for service tests.
package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
)

// MockMovementRepository is a mock implementation of domain.MovementRepository
type MockMovementRepository struct {
	Movements []*domain.Movement
}

// NewMockMovementRepository creates a new MockMovementRepository
func NewMockMovementRepository() *MockMovementRepository {
	return &MockMovementRepository{Movements: []*domain.Movement{}}
}

// AddMovement adds a movement to the mock repository (helper for tests)
func (m *MockMovementRepository) AddMovement(movement *domain.Movement) {
	if movement.ID == uuid.Nil {
		movement.ID = uuid.New()
	}
	m.Movements = append(m.Movements, movement)
}

// Create creates a new movement
func (m *MockMovementRepository) Create(ctx context.Context, movement *domain.Movement) (*domain.Movement, error) {
	movement.ID = uuid.New()
	movement.CreatedAt = time.Now().UTC()
	movement.UpdatedAt = movement.CreatedAt
	m.Movements = append(m.Movements, movement)
	return movement, nil
}

// GetByID retrieves a movement by ID for a user
func (m *MockMovementRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Movement, error) {
	for _, mv := range m.Movements {
		if mv.ID == id && mv.UserID == userID {
			return mv, nil
		}
	}
	return nil, domain.ErrMovementNotFound
}

// List retrieves movements with filters and pagination
func (m *MockMovementRepository) List(ctx context.Context, userID uuid.UUID, filters *domain.MovementFilters) (*domain.PaginatedMovements, error) {
	matched := []*domain.Movement{}
	for _, mv := range m.Movements {
		if mv.UserID != userID {
			continue
		}
		if filters != nil {
			if filters.Kind != nil && mv.Kind != *filters.Kind {
				continue
			}
			if filters.CategoryID != nil && (mv.CategoryID == nil || *mv.CategoryID != *filters.CategoryID) {
				continue
			}
			if filters.StartDate != nil && mv.OccurredOn.Before(*filters.StartDate) {
				continue
			}
			if filters.EndDate != nil && mv.OccurredOn.After(*filters.EndDate) {
				continue
			}
		}
		matched = append(matched, mv)
	}

	page := int32(1)
	pageSize := int32(domain.DefaultPageSize)
	if filters != nil {
		if filters.Page > 0 {
			page = filters.Page
		}
		if filters.PageSize > 0 {
			pageSize = filters.PageSize
		}
	}

	total := int64(len(matched))
	offset := int((page - 1) * pageSize)
	if offset > len(matched) {
		offset = len(matched)
	}
	limit := offset + int(pageSize)
	if limit > len(matched) {
		limit = len(matched)
	}

	totalPages := int32((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedMovements{
		Data:       matched[offset:limit],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// ListByDateRange retrieves movements in [start, end] ordered by date
func (m *MockMovementRepository) ListByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Movement, error) {
	matched := []*domain.Movement{}
	for _, mv := range m.Movements {
		if mv.UserID != userID {
			continue
		}
		if mv.OccurredOn.Before(start) || mv.OccurredOn.After(end) {
			continue
		}
		matched = append(matched, mv)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].OccurredOn.Equal(matched[j].OccurredOn) {
			return matched[i].OccurredOn.Before(matched[j].OccurredOn)
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched, nil
}

// Update updates a movement
func (m *MockMovementRepository) Update(ctx context.Context, movement *domain.Movement) (*domain.Movement, error) {
	for i, mv := range m.Movements {
		if mv.ID == movement.ID && mv.UserID == movement.UserID {
			movement.UpdatedAt = time.Now().UTC()
			m.Movements[i] = movement
			return movement, nil
		}
	}
	return nil, domain.ErrMovementNotFound
}

// Delete deletes a movement
func (m *MockMovementRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	for i, mv := range m.Movements {
		if mv.ID == id && mv.UserID == userID {
			m.Movements = append(m.Movements[:i], m.Movements[i+1:]...)
			return nil
		}
	}
	return domain.ErrMovementNotFound
}

// CountByCategory counts movements referencing a category
func (m *MockMovementRepository) CountByCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error) {
	var count int64
	for _, mv := range m.Movements {
		if mv.UserID == userID && mv.CategoryID != nil && *mv.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories []*domain.Category
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: []*domain.Category{}}
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	m.Categories = append(m.Categories, category)
}

// Create creates a new category
func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	category.ID = uuid.New()
	category.CreatedAt = time.Now().UTC()
	category.UpdatedAt = category.CreatedAt
	m.Categories = append(m.Categories, category)
	return category, nil
}

// GetByID retrieves a category by ID for a user
func (m *MockCategoryRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Category, error) {
	for _, c := range m.Categories {
		if c.ID == id && c.UserID == userID {
			return c, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// List retrieves all categories for a user
func (m *MockCategoryRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	out := []*domain.Category{}
	for _, c := range m.Categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

// Update updates a category
func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	for i, c := range m.Categories {
		if c.ID == category.ID && c.UserID == category.UserID {
			category.UpdatedAt = time.Now().UTC()
			m.Categories[i] = category
			return category, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// Delete deletes a category
func (m *MockCategoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	for i, c := range m.Categories {
		if c.ID == id && c.UserID == userID {
			m.Categories = append(m.Categories[:i], m.Categories[i+1:]...)
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}

// MockGoalRepository is a mock implementation of domain.GoalRepository
type MockGoalRepository struct {
	Goals []*domain.Goal
}

// NewMockGoalRepository creates a new MockGoalRepository
func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{Goals: []*domain.Goal{}}
}

// AddGoal adds a goal to the mock repository (helper for tests)
func (m *MockGoalRepository) AddGoal(goal *domain.Goal) {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	m.Goals = append(m.Goals, goal)
}

// Create creates a new goal
func (m *MockGoalRepository) Create(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	goal.ID = uuid.New()
	goal.CreatedAt = time.Now().UTC()
	goal.UpdatedAt = goal.CreatedAt
	m.Goals = append(m.Goals, goal)
	return goal, nil
}

// GetByID retrieves a goal by ID for a user
func (m *MockGoalRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Goal, error) {
	for _, g := range m.Goals {
		if g.ID == id && g.UserID == userID {
			return g, nil
		}
	}
	return nil, domain.ErrGoalNotFound
}

// List retrieves goals with optional filters, in insertion order
func (m *MockGoalRepository) List(ctx context.Context, userID uuid.UUID, filters *domain.GoalFilters) ([]*domain.Goal, error) {
	out := []*domain.Goal{}
	for _, g := range m.Goals {
		if g.UserID != userID {
			continue
		}
		if filters != nil {
			if filters.Status != nil && g.Status != *filters.Status {
				continue
			}
			if filters.Category != nil && (g.Category == nil || *g.Category != *filters.Category) {
				continue
			}
			if filters.Year != nil && g.CreatedAt.Year() != *filters.Year {
				continue
			}
		}
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// Update updates a goal
func (m *MockGoalRepository) Update(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	for i, g := range m.Goals {
		if g.ID == goal.ID && g.UserID == goal.UserID {
			goal.UpdatedAt = time.Now().UTC()
			m.Goals[i] = goal
			return goal, nil
		}
	}
	return nil, domain.ErrGoalNotFound
}

// Delete deletes a goal
func (m *MockGoalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	for i, g := range m.Goals {
		if g.ID == id && g.UserID == userID {
			m.Goals = append(m.Goals[:i], m.Goals[i+1:]...)
			return nil
		}
	}
	return domain.ErrGoalNotFound
}

// MockGoalContributionRepository is a mock implementation of domain.GoalContributionRepository
type MockGoalContributionRepository struct {
	Contributions []*domain.GoalContribution
	// GoalOwners maps goal ID to owning user, for ListByUser
	GoalOwners map[uuid.UUID]uuid.UUID
}

// NewMockGoalContributionRepository creates a new MockGoalContributionRepository
func NewMockGoalContributionRepository() *MockGoalContributionRepository {
	return &MockGoalContributionRepository{
		Contributions: []*domain.GoalContribution{},
		GoalOwners:    make(map[uuid.UUID]uuid.UUID),
	}
}

// AddContribution adds a contribution to the mock repository (helper for tests)
func (m *MockGoalContributionRepository) AddContribution(contribution *domain.GoalContribution, ownerID uuid.UUID) {
	if contribution.ID == uuid.Nil {
		contribution.ID = uuid.New()
	}
	m.Contributions = append(m.Contributions, contribution)
	m.GoalOwners[contribution.GoalID] = ownerID
}

// Create creates a new contribution
func (m *MockGoalContributionRepository) Create(ctx context.Context, contribution *domain.GoalContribution) (*domain.GoalContribution, error) {
	contribution.ID = uuid.New()
	contribution.CreatedAt = time.Now().UTC()
	m.Contributions = append(m.Contributions, contribution)
	return contribution, nil
}

// ListByGoal retrieves contributions for a goal
func (m *MockGoalContributionRepository) ListByGoal(ctx context.Context, goalID uuid.UUID) ([]*domain.GoalContribution, error) {
	out := []*domain.GoalContribution{}
	for _, c := range m.Contributions {
		if c.GoalID == goalID {
			out = append(out, c)
		}
	}
	return out, nil
}

// ListByUser retrieves contributions across a user's goals in [start, end]
func (m *MockGoalContributionRepository) ListByUser(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.GoalContribution, error) {
	out := []*domain.GoalContribution{}
	for _, c := range m.Contributions {
		if m.GoalOwners[c.GoalID] != userID {
			continue
		}
		if c.CreatedAt.Before(start) || c.CreatedAt.After(end) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users map[string]*domain.User
	ByID  map[uuid.UUID]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(ctx context.Context, auth0ID, email string, name *string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:        uuid.New(),
		Auth0ID:   auth0ID,
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	m.Users[auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// UpdateName updates the user's name
func (m *MockUserRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) (*domain.User, error) {
	user, ok := m.ByID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.Name = &name
	return user, nil
}
