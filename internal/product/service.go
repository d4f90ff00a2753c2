package product

import (
	"context"
	"strings"
	"time"

	"toko-be/internal/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultPageSize matches the storefront grid (12 products per page).
const DefaultPageSize = 12

type Service interface {
	GetList(ctx context.Context, opts ListOptions) (*ListResult, error)
	GetByID(ctx context.Context, productID uuid.UUID) (*Product, error)
	Create(ctx context.Context, input NewProduct) (*Product, error)
	Update(ctx context.Context, productID uuid.UUID, input NewProduct) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetList(ctx context.Context, opts ListOptions) (*ListResult, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProductList"),
	)

	start := time.Now()

	/* ---------- INPUT NORMALIZATION ---------- */

	if opts.Page <= 0 {
		opts.Page = 1
	}

	if opts.Limit <= 0 {
		opts.Limit = DefaultPageSize
	} else if opts.Limit > 100 {
		opts.Limit = 100
	}

	items, total, err := s.repo.GetList(ctx, opts)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	return &ListResult{Items: items, Total: total}, nil
}

func (s *service) GetByID(ctx context.Context, productID uuid.UUID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

func (s *service) Create(ctx context.Context, input NewProduct) (*Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, input)
}

func (s *service) Update(ctx context.Context, productID uuid.UUID, input NewProduct) (*Product, error) {
	if productID == uuid.Nil {
		return nil, ErrProductNotFound
	}

	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, productID, input)
}

func validateProductInput(input NewProduct) error {
	if len(strings.TrimSpace(input.Name)) < 3 {
		return ErrInvalidName
	}
	if strings.TrimSpace(input.Description) == "" {
		return ErrInvalidInput
	}
	if input.Price.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidPrice
	}
	if strings.TrimSpace(input.Category) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(input.ImageURL) == "" {
		return ErrInvalidInput
	}
	return nil
}
