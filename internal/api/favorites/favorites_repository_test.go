package favorites

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderke/wanderke-api/internal/types"
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *PostgresFavoritesRepo) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	t.Cleanup(mock.Close)
	return mock, NewPostgresFavoritesRepo(mock, slog.Default())
}

func TestPostgresFavoritesRepo_Add(t *testing.T) {
	userID := uuid.New()
	ref := types.FavoriteRef{
		TargetID:   uuid.New(),
		TargetType: types.TargetPlace,
		CountyID:   uuid.New(),
	}

	t.Run("duplicate inserts both succeed", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectExec(`INSERT INTO favorites`).
			WithArgs(userID, ref.TargetID, ref.TargetType, ref.CountyID).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(`INSERT INTO favorites`).
			WithArgs(userID, ref.TargetID, ref.TargetType, ref.CountyID).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.Add(context.Background(), userID, ref))
		require.NoError(t, repo.Add(context.Background(), userID, ref))
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("database error", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectExec(`INSERT INTO favorites`).
			WithArgs(userID, ref.TargetID, ref.TargetType, ref.CountyID).
			WillReturnError(errors.New("connection refused"))

		err := repo.Add(context.Background(), userID, ref)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestPostgresFavoritesRepo_Remove(t *testing.T) {
	userID := uuid.New()
	targetID := uuid.New()

	t.Run("removes every matching row", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectExec(`DELETE FROM favorites`).
			WithArgs(userID, targetID, types.TargetPlace).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))

		removed, err := repo.Remove(context.Background(), userID, targetID, types.TargetPlace)
		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("no match is not an error", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectExec(`DELETE FROM favorites`).
			WithArgs(userID, targetID, types.TargetHotel).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		removed, err := repo.Remove(context.Background(), userID, targetID, types.TargetHotel)
		require.NoError(t, err)
		assert.Equal(t, int64(0), removed)
	})
}

func TestPostgresFavoritesRepo_List(t *testing.T) {
	userID := uuid.New()

	t.Run("returns refs in insertion order", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		first := uuid.New()
		second := uuid.New()
		countyID := uuid.New()

		mock.ExpectQuery(`SELECT target_id, target_type, county_id, created_at`).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"target_id", "target_type", "county_id", "created_at"}).
				AddRow(first, types.TargetPlace, countyID, time.Now()).
				AddRow(second, types.TargetHotel, countyID, time.Now()))

		refs, err := repo.List(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, refs, 2)
		assert.Equal(t, first, refs[0].TargetID)
		assert.Equal(t, second, refs[1].TargetID)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("empty ledger", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(`SELECT target_id, target_type, county_id, created_at`).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"target_id", "target_type", "county_id", "created_at"}))

		refs, err := repo.List(context.Background(), userID)
		require.NoError(t, err)
		assert.Empty(t, refs)
	})
}

func TestPostgresFavoritesRepo_UserExists(t *testing.T) {
	userID := uuid.New()

	t.Run("exists", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(`SELECT id FROM users WHERE id = \$1`).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(userID))

		exists, err := repo.UserExists(context.Background(), userID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("missing", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(`SELECT id FROM users WHERE id = \$1`).
			WithArgs(userID).
			WillReturnError(errors.New("no rows in result set"))

		_, err := repo.UserExists(context.Background(), userID)
		assert.Error(t, err)
	})

	t.Run("missing via ErrNoRows", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(`SELECT id FROM users WHERE id = \$1`).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"id"}))

		exists, err := repo.UserExists(context.Background(), userID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
