package inventory

import (
	"context"

	"toko-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Get(ctx context.Context, productID uuid.UUID) (*Record, error)
	Deduct(ctx context.Context, productID uuid.UUID, quantity int) (int, error)
	SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) (*Record, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, productID uuid.UUID) (*Record, error) {
	return s.repo.Get(ctx, productID)
}

// Deduct decrements stock for one product. The record is left unchanged
// when the decrement would drive the quantity negative.
func (s *service) Deduct(ctx context.Context, productID uuid.UUID, quantity int) (int, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Deduct"),
		zap.String("product_id", productID.String()),
		zap.Int("quantity", quantity),
	)

	if quantity <= 0 {
		log.Warn("invalid deduction quantity")
		return 0, ErrInvalidQuantity
	}

	remaining, err := s.repo.Deduct(ctx, productID, quantity)
	if err != nil {
		log.Warn("deduction failed", zap.Error(err))
		return 0, err
	}

	log.Info("stock deducted", zap.Int("remaining", remaining))

	return remaining, nil
}

// SetQuantity is the direct admin correction; only non-negative values are accepted.
func (s *service) SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) (*Record, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	rec, err := s.repo.SetQuantity(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("inventory set",
		zap.String("product_id", productID.String()),
		zap.Int("quantity", quantity),
	)

	return rec, nil
}
