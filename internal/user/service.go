package user

import (
	"context"
	"strings"

	"toko-be/internal/auth"
	"toko-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, email, password string) (string, User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetProfile(ctx context.Context) (*Profile, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error)
	ListAccounts(ctx context.Context, page, limit int32) ([]AccountSummary, error)
	SetAdmin(ctx context.Context, userID uuid.UUID, isAdmin bool) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return "", User{}, ErrInvalidEmail
	}
	if len(password) < 8 {
		return "", User{}, ErrWeakPassword
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, email, hashed)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return "", User{}, ErrEmailExists
		}
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return "", User{}, err
	}

	token, err := auth.GenerateToken(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		log.Error("failed to generate token", zap.String("user_id", u.ID.String()), zap.Error(err))
		return "", User{}, err
	}

	log.Info("user registered",
		zap.String("user_id", u.ID.String()),
		zap.String("email", email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Same answer for a missing account and a wrong password.
		log.Info("login rejected", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Info("login rejected", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return "", User{}, err
	}

	log.Info("user logged in", zap.String("user_id", u.ID.String()))

	return token, u, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetProfile(ctx context.Context) (*Profile, error) {
	actor, ok := auth.ActorFrom(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	return s.repo.GetProfile(ctx, actor.UserID)
}

func (s *service) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error) {
	actor, ok := auth.ActorFrom(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	return s.repo.UpsertProfile(ctx, actor.UserID, params)
}

func (s *service) ListAccounts(ctx context.Context, page, limit int32) ([]AccountSummary, error) {
	actor, ok := auth.ActorFrom(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	return s.repo.List(ctx, limit, (page-1)*limit)
}

// SetAdmin flips the admin flag. The change lands in the token claims on
// the target's next login, not on their current session.
func (s *service) SetAdmin(ctx context.Context, userID uuid.UUID, isAdmin bool) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SetAdmin"),
		zap.String("target_user_id", userID.String()),
	)

	actor, ok := auth.ActorFrom(ctx)
	if !ok {
		return ErrUnauthenticated
	}
	if !actor.IsAdmin {
		return ErrForbidden
	}
	if actor.UserID == userID && !isAdmin {
		// Admins cannot lock themselves out.
		return ErrSelfDemotion
	}

	if err := s.repo.SetAdmin(ctx, userID, isAdmin); err != nil {
		return err
	}

	log.Info("admin flag updated", zap.Bool("is_admin", isAdmin))

	return nil
}
