package review

import (
	"context"
	"strings"

	"toko-be/internal/auth"
	"toko-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Submit(ctx context.Context, params SubmitParams) (*Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*Review, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Submit(ctx context.Context, params SubmitParams) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Submit"),
	)

	actor, ok := auth.ActorFrom(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	if params.Rating < 1 || params.Rating > 5 {
		return nil, ErrInvalidRating
	}
	params.Comment = strings.TrimSpace(params.Comment)

	rev, err := s.repo.Create(ctx, actor.UserID, params)
	if err != nil {
		log.Warn("failed to submit review", zap.Error(err))
		return nil, err
	}

	return rev, nil
}

func (s *service) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*Review, error) {
	return s.repo.ListByProduct(ctx, productID)
}
