package review

import (
	"context"
	"testing"

	"toko-be/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, userID uuid.UUID, params SubmitParams) (*Review, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Review), args.Error(1)
}

func (m *MockRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Review), args.Error(1)
}

func actorCtx(userID uuid.UUID) context.Context {
	return auth.WithActor(context.Background(), auth.Actor{UserID: userID})
}

func TestService_Submit(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("success trims the comment", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		want := SubmitParams{ProductID: productID, Rating: 4, Comment: "Sturdy desk"}
		mockRepo.On("Create", mock.Anything, userID, want).
			Return(&Review{ID: uuid.New(), ProductID: productID, UserID: userID, Rating: 4, Comment: "Sturdy desk"}, nil)

		rev, err := svc.Submit(actorCtx(userID), SubmitParams{
			ProductID: productID,
			Rating:    4,
			Comment:   "  Sturdy desk  ",
		})

		require.NoError(t, err)
		assert.Equal(t, 4, rev.Rating)
		mockRepo.AssertExpectations(t)
	})

	t.Run("requires auth", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.Submit(context.Background(), SubmitParams{ProductID: productID, Rating: 4})

		assert.ErrorIs(t, err, ErrUnauthenticated)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rating bounds", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		for _, rating := range []int{0, -1, 6} {
			_, err := svc.Submit(actorCtx(userID), SubmitParams{ProductID: productID, Rating: rating})
			assert.ErrorIs(t, err, ErrInvalidRating)
		}
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("unknown product", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", mock.Anything, userID, mock.Anything).
			Return(nil, ErrProductNotFound)

		_, err := svc.Submit(actorCtx(userID), SubmitParams{ProductID: productID, Rating: 5})

		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_ListByProduct(t *testing.T) {
	productID := uuid.New()

	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)

	name := "Jane Shopper"
	mockRepo.On("ListByProduct", mock.Anything, productID).
		Return([]*Review{{ID: uuid.New(), ProductID: productID, Rating: 5, ReviewerName: &name}}, nil)

	reviews, err := svc.ListByProduct(context.Background(), productID)

	require.NoError(t, err)
	assert.Len(t, reviews, 1)
	assert.Equal(t, "Jane Shopper", *reviews[0].ReviewerName)
}
