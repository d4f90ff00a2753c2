package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("jane@example.com", "hashed").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "is_admin", "created_at"}).
			AddRow(id, "jane@example.com", "hashed", false, now))

	u, err := repo.Create(context.Background(), "jane@example.com", "hashed")

	assert.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.False(t, u.IsAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("found", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
			WithArgs("jane@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "is_admin", "created_at"}).
				AddRow(id, "jane@example.com", "hashed", true, time.Now()))

		u, err := repo.FindByEmail(context.Background(), "jane@example.com")

		assert.NoError(t, err)
		assert.True(t, u.IsAdmin)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
			WithArgs("ghost@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByEmail(context.Background(), "ghost@example.com")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_GetProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	userID := uuid.New()

	t.Run("saved profile", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM user_profiles")).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "full_name", "address", "phone", "updated_at"}).
				AddRow(userID, "Jane Shopper", "1 Market St", "555-0101", time.Now()))

		p, err := repo.GetProfile(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, "Jane Shopper", *p.FullName)
	})

	t.Run("no profile yet yields an empty one", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM user_profiles")).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

		p, err := repo.GetProfile(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, userID, p.UserID)
		assert.Nil(t, p.FullName)
	})
}

func TestRepository_UpsertProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	userID := uuid.New()
	name := "Jane Shopper"

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO user_profiles")).
		WithArgs(userID, &name, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "full_name", "address", "phone", "updated_at"}).
			AddRow(userID, name, nil, nil, time.Now()))

	p, err := repo.UpsertProfile(context.Background(), userID, UpdateProfileParams{FullName: &name})

	require.NoError(t, err)
	assert.Equal(t, name, *p.FullName)
	assert.Nil(t, p.Address)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	userID := uuid.New()

	t.Run("updates the flag", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET is_admin = $2 WHERE id = $1")).
			WithArgs(userID, true).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetAdmin(context.Background(), userID, true))
	})

	t.Run("unknown user", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET is_admin = $2 WHERE id = $1")).
			WithArgs(userID, false).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetAdmin(context.Background(), userID, false)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN user_profiles")).
		WithArgs(int32(20), int32(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "is_admin", "created_at"}).
			AddRow(uuid.New(), "jane@example.com", "Jane Shopper", false, time.Now()).
			AddRow(uuid.New(), "admin@example.com", nil, true, time.Now()))

	accounts, err := repo.List(context.Background(), 20, 0)

	require.NoError(t, err)
	assert.Len(t, accounts, 2)
	assert.Nil(t, accounts[1].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
