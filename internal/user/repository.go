package user

import (
	"context"
	"database/sql"
	"errors"

	"toko-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, email, hashedPassword string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, params UpdateProfileParams) (*Profile, error)
	List(ctx context.Context, limit, offset int32) ([]AccountSummary, error)
	SetAdmin(ctx context.Context, userID uuid.UUID, isAdmin bool) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, email, hashedPassword string) (User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	var u User
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password)
		VALUES ($1, $2)
		RETURNING id, email, password, is_admin, created_at
	`, email, hashedPassword).Scan(&u.ID, &u.Email, &u.Password, &u.IsAdmin, &u.CreatedAt)

	if err != nil {
		log.Error("failed to insert user",
			zap.String("email", email),
			zap.Error(err),
		)
	}

	return u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password, is_admin, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.Password, &u.IsAdmin, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}

	return u, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password, is_admin, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.Password, &u.IsAdmin, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}

	return u, err
}

func (r *repository) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var p Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, full_name, address, phone, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.FullName, &p.Address, &p.Phone, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		// A user without a saved profile is not an error.
		return &Profile{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) UpsertProfile(ctx context.Context, userID uuid.UUID, params UpdateProfileParams) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpsertProfile"),
		zap.String("user_id", userID.String()),
	)

	var p Profile
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO user_profiles (user_id, full_name, address, phone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = COALESCE(EXCLUDED.full_name, user_profiles.full_name),
			address = COALESCE(EXCLUDED.address, user_profiles.address),
			phone = COALESCE(EXCLUDED.phone, user_profiles.phone),
			updated_at = NOW()
		RETURNING user_id, full_name, address, phone, updated_at
	`, userID, params.FullName, params.Address, params.Phone).
		Scan(&p.UserID, &p.FullName, &p.Address, &p.Phone, &p.UpdatedAt)

	if err != nil {
		log.Error("failed to upsert profile", zap.Error(err))
		return nil, err
	}

	return &p, nil
}

func (r *repository) List(ctx context.Context, limit, offset int32) ([]AccountSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.email, p.full_name, u.is_admin, u.created_at
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		ORDER BY u.created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []AccountSummary
	for rows.Next() {
		var a AccountSummary
		if err := rows.Scan(&a.ID, &a.Email, &a.FullName, &a.IsAdmin, &a.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

func (r *repository) SetAdmin(ctx context.Context, userID uuid.UUID, isAdmin bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_admin = $2 WHERE id = $1`,
		userID, isAdmin,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
