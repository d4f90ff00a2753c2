package product

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetList(ctx context.Context, opts ListOptions) ([]*Product, int, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Product), args.Int(1), args.Error(2)
}

func (m *MockRepository) GetByID(ctx context.Context, productID uuid.UUID) (*Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, input NewProduct) (*Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, productID uuid.UUID, input NewProduct) (*Product, error) {
	args := m.Called(ctx, productID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func validInput() NewProduct {
	return NewProduct{
		Name:        "Ceramic Mug",
		Description: "A mug",
		Price:       decimal.NewFromFloat(12.50),
		Category:    "kitchen",
		ImageURL:    "https://img.example.com/mug.jpg",
	}
}

// --- Tests ---

func TestService_GetList(t *testing.T) {
	ctx := context.Background()

	t.Run("NormalizesPagination", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		expected := ListOptions{Page: 1, Limit: DefaultPageSize}
		mockRepo.On("GetList", ctx, expected).Return([]*Product{}, 0, nil)

		res, err := svc.GetList(ctx, ListOptions{})

		assert.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		mockRepo.AssertExpectations(t)
	})

	t.Run("CapsLimit", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		expected := ListOptions{Page: 2, Limit: 100}
		mockRepo.On("GetList", ctx, expected).Return([]*Product{}, 0, nil)

		_, err := svc.GetList(ctx, ListOptions{Page: 2, Limit: 500})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetList", ctx, mock.Anything).Return(nil, 0, errors.New("db error"))

		_, err := svc.GetList(ctx, ListOptions{})
		assert.Error(t, err)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		input := validInput()
		created := &Product{ID: uuid.New(), Name: input.Name}
		mockRepo.On("Create", ctx, input).Return(created, nil)

		p, err := svc.Create(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, created, p)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NameTooShort", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		input := validInput()
		input.Name = "ab"

		_, err := svc.Create(ctx, input)

		assert.ErrorIs(t, err, ErrInvalidName)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("NonPositivePrice", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		input := validInput()
		input.Price = decimal.Zero

		_, err := svc.Create(ctx, input)

		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("MissingCategory", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		input := validInput()
		input.Category = "  "

		_, err := svc.Create(ctx, input)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		id := uuid.New()
		input := validInput()
		updated := &Product{ID: id, Name: input.Name}
		mockRepo.On("Update", ctx, id, input).Return(updated, nil)

		p, err := svc.Update(ctx, id, input)

		assert.NoError(t, err)
		assert.Equal(t, updated, p)
	})

	t.Run("NilID", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.Update(ctx, uuid.Nil, validInput())

		assert.ErrorIs(t, err, ErrProductNotFound)
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		id := uuid.New()
		mockRepo.On("Update", ctx, id, mock.Anything).Return(nil, ErrProductNotFound)

		_, err := svc.Update(ctx, id, validInput())

		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)

	id := uuid.New()
	rating := 4.5
	p := &Product{ID: id, Name: "Ceramic Mug", AverageRating: &rating}
	mockRepo.On("GetByID", ctx, id).Return(p, nil)

	got, err := svc.GetByID(ctx, id)

	assert.NoError(t, err)
	assert.Equal(t, p, got)
}
