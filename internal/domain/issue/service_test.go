package issue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, filter Filter, order Order) ([]Issue, error) {
	args := m.Called(ctx, filter, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Issue), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, in NewIssue) (Issue, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(Issue), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id string, patch Patch) (Issue, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(Issue), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo Repository) *Service {
	s := NewService(repo, slog.Default())
	s.now = func() time.Time { return time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestService_Create_DefaultsStatusAndTime(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(in NewIssue) bool {
		return in.Status == StatusNew &&
			in.Title == "Delayed shipment" &&
			in.CreatedAt.Equal(time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))
	})).Return(Issue{ID: "1", Title: "Delayed shipment", Status: StatusNew}, nil)

	created, err := service.Create(context.Background(), NewIssue{
		Title:         "  Delayed shipment ",
		Description:   "Truck broke down",
		ResponsibleID: "2",
	})

	require.NoError(t, err)
	assert.Equal(t, "1", created.ID)
	mockRepo.AssertExpectations(t)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		in      NewIssue
		wantErr error
	}{
		{name: "empty title", in: NewIssue{Title: " ", Description: "d"}, wantErr: ErrInvalidInput},
		{name: "empty description", in: NewIssue{Title: "t"}, wantErr: ErrInvalidInput},
		{name: "bad status", in: NewIssue{Title: "t", Description: "d", Status: "Lost"}, wantErr: ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := newTestService(mockRepo)

			_, err := service.Create(context.Background(), tt.in)

			assert.ErrorIs(t, err, tt.wantErr)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Update(t *testing.T) {
	t.Run("empty patch", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newTestService(mockRepo)

		_, err := service.Update(context.Background(), "1", Patch{})
		assert.ErrorIs(t, err, ErrEmptyPatch)
	})

	t.Run("invalid status", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newTestService(mockRepo)

		_, err := service.Update(context.Background(), "1", StatusPatch("Lost"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("not found is wrapped", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newTestService(mockRepo)
		patch := StatusPatch(StatusDone)
		mockRepo.On("Update", mock.Anything, "42", patch).Return(Issue{}, ErrNotFound)

		_, err := service.Update(context.Background(), "42", patch)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_List_DefaultOrder(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	mockRepo.On("List", mock.Anything, Filter{}, NewestFirst).Return([]Issue{{ID: "1"}}, nil)

	got, err := service.List(context.Background(), Filter{}, Order{})

	require.NoError(t, err)
	assert.Len(t, got, 1)
	mockRepo.AssertExpectations(t)
}

func TestService_Delete_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	mockRepo.On("Delete", mock.Anything, "5").Return(errors.New("database error"))

	err := service.Delete(context.Background(), "5")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
}
