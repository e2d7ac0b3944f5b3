package userstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/auth"
	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewPostgres(&db.DB{DB: sqlDB}), mock
}

func TestGetOrCreateReturnsExistingRecordVerbatim(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, facebook_id, email, full_name").
		WithArgs("F1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "facebook_id", "email", "full_name"}).
			AddRow(7, "F1", "a@x.com", "Ann"))

	// The candidate carries a fresher profile; stored values must win.
	got, err := store.GetOrCreate(context.Background(), &auth.User{
		FacebookID: "F1",
		Email:      "new@x.com",
		FullName:   "Ann Updated",
	})
	require.NoError(t, err)

	assert.Equal(t, &auth.User{ID: 7, FacebookID: "F1", Email: "a@x.com", FullName: "Ann"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateInsertsWhenAbsent(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, facebook_id, email, full_name").
		WithArgs("F1").
		WillReturnError(sql.ErrNoRows)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("F1", "a@x.com", "Ann").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	got, err := store.GetOrCreate(context.Background(), &auth.User{
		FacebookID: "F1",
		Email:      "a@x.com",
		FullName:   "Ann",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "F1", got.FacebookID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateInsertFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, facebook_id, email, full_name").
		WithArgs("F1").
		WillReturnError(sql.ErrNoRows)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("F1", "a@x.com", "Ann").
		WillReturnError(errors.New("duplicate key value violates unique constraint"))

	got, err := store.GetOrCreate(context.Background(), &auth.User{
		FacebookID: "F1",
		Email:      "a@x.com",
		FullName:   "Ann",
	})
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestGetOrCreateLookupFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, facebook_id, email, full_name").
		WithArgs("F1").
		WillReturnError(errors.New("connection reset"))

	got, err := store.GetOrCreate(context.Background(), &auth.User{FacebookID: "F1"})
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestGetOrCreateRejectsMissingFacebookID(t *testing.T) {
	store, _ := newMockStore(t)

	_, err := store.GetOrCreate(context.Background(), &auth.User{})
	assert.Error(t, err)

	_, err = store.GetOrCreate(context.Background(), nil)
	assert.Error(t, err)
}
