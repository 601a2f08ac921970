package ingredient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ingredientCols = []string{
	"id", "name", "description", "count", "price", "is_in_reserve", "path_photo", "created_at", "updated_at",
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("AboveThreshold", func(t *testing.T) {
		rows := sqlmock.NewRows(ingredientCols).
			AddRow(uuid.New(), "flour", "", 10.0, 1.5, false, nil, now, now)

		mock.ExpectQuery("INSERT INTO ingredients").
			WithArgs(sqlmock.AnyArg(), "flour", "", 10.0, 1.5, 2.0, nil).
			WillReturnRows(rows)

		i, err := repo.Create(context.Background(), CreateInput{Name: "flour", Count: 10, Price: 1.5})
		assert.NoError(t, err)
		assert.False(t, i.IsInReserve)
	})

	t.Run("AtThresholdIsReserved", func(t *testing.T) {
		rows := sqlmock.NewRows(ingredientCols).
			AddRow(uuid.New(), "saffron", "", 2.0, 90.0, true, nil, now, now)

		mock.ExpectQuery("INSERT INTO ingredients").
			WithArgs(sqlmock.AnyArg(), "saffron", "", 2.0, 90.0, 2.0, nil).
			WillReturnRows(rows)

		i, err := repo.Create(context.Background(), CreateInput{Name: "saffron", Count: 2, Price: 90})
		assert.NoError(t, err)
		assert.True(t, i.IsInReserve)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO ingredients").
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(context.Background(), CreateInput{Name: "flour"})
		assert.Error(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(ingredientCols).
			AddRow(id, "flour", "baking", 10.0, 1.5, false, nil, now, now)

		mock.ExpectQuery("SELECT .* FROM ingredients WHERE id").
			WithArgs(id).
			WillReturnRows(rows)

		i, err := repo.GetByID(context.Background(), id)
		assert.NoError(t, err)
		assert.Equal(t, "flour", i.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM ingredients WHERE id").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(ingredientCols))

		_, err := repo.GetByID(context.Background(), id)
		assert.Equal(t, ErrNotFound, err)
	})
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()
	now := time.Now()

	t.Run("DropsIntoReserve", func(t *testing.T) {
		rows := sqlmock.NewRows(ingredientCols).
			AddRow(id, "flour", "", 1.0, 1.5, true, nil, now, now)

		mock.ExpectQuery("UPDATE ingredients").
			WithArgs(id, "flour", "", 1.0, 1.5, 2.0, nil).
			WillReturnRows(rows)

		i, err := repo.Update(context.Background(), UpdateInput{ID: id, Name: "flour", Count: 1, Price: 1.5})
		assert.NoError(t, err)
		assert.True(t, i.IsInReserve)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("UPDATE ingredients").
			WillReturnRows(sqlmock.NewRows(ingredientCols))

		_, err := repo.Update(context.Background(), UpdateInput{ID: id, Name: "flour"})
		assert.Equal(t, ErrNotFound, err)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM ingredients").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), id)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM ingredients").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), id)
		assert.Equal(t, ErrNotFound, err)
	})
}
