package cart

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic for carts.
type Service interface {
	AddItem(ctx context.Context, params AddItemParams) (*Line, error)
	GetLines(ctx context.Context, userID uuid.UUID) ([]*Line, error)
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddItem adds a product to a user's cart, merging with an existing line.
func (s *service) AddItem(ctx context.Context, params AddItemParams) (*Line, error) {
	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	stock, exists, err := s.repo.AvailableStock(ctx, params.ProductID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProductNotFound
	}

	// Final quantity after merging with any existing line must fit in stock.
	finalQty := params.Quantity
	existing, err := s.repo.GetLineByProduct(ctx, params.UserID, params.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		finalQty += existing.Quantity
	}

	if finalQty > stock {
		return nil, ErrInsufficientStock
	}

	return s.repo.Upsert(ctx, params)
}

func (s *service) GetLines(ctx context.Context, userID uuid.UUID) ([]*Line, error) {
	return s.repo.GetLines(ctx, userID)
}

// UpdateQuantity sets the quantity for a line; zero or negative removes it.
func (s *service) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return s.repo.Remove(ctx, userID, productID)
	}

	return s.repo.UpdateQuantity(ctx, userID, productID, quantity)
}

func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return s.repo.Remove(ctx, userID, productID)
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Clear(ctx, userID)
}
