package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-rental-api/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

var sqlmockNow = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestCustomerCreateAssignsID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCustomerRepo(db)

	mock.ExpectExec(q("INSERT INTO customers")).
		WithArgs(sqlmock.AnyArg(), "customer1", true, "063375785").
		WillReturnResult(sqlmock.NewResult(0, 1))

	c := &model.Customer{Name: "customer1", IsGold: true, Phone: "063375785"}
	require.NoError(t, repo.Create(context.Background(), c))
	assert.NotEqual(t, uuid.Nil, c.ID)
}

func TestCustomerGetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCustomerRepo(db)
	id := uuid.New()

	mock.ExpectQuery(q("SELECT id, name, is_gold, phone FROM customers WHERE id = ?")).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_gold", "phone"}).
			AddRow(id.String(), "customer1", true, "063375785"))

	c, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.Customer{ID: id, Name: "customer1", IsGold: true, Phone: "063375785"}, *c)
}

func TestCustomerGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCustomerRepo(db)

	mock.ExpectQuery(q("FROM customers WHERE id = ?")).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomerGetByIDStorageFault(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCustomerRepo(db)
	boom := errors.New("connection reset")

	mock.ExpectQuery(q("FROM customers WHERE id = ?")).WillReturnError(boom)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomerListEmptyIsNotNil(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCustomerRepo(db)

	mock.ExpectQuery(q("FROM customers ORDER BY name")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_gold", "phone"}))

	out, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestCustomerUpdateNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCustomerRepo(db)

	mock.ExpectExec(q("UPDATE customers SET")).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &model.Customer{ID: uuid.New(), Name: "updatedName", Phone: "000000000"})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomerDeleteReturnsPriorRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCustomerRepo(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT id, name, is_gold, phone FROM customers WHERE id = ? FOR UPDATE")).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_gold", "phone"}).
			AddRow(id.String(), "customer1", true, "063375785"))
	mock.ExpectExec(q("DELETE FROM customers WHERE id = ?")).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "customer1", c.Name)
	assert.Equal(t, id, c.ID)
}

func TestCustomerDeleteMissingRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCustomerRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FOR UPDATE")).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(q("INSERT INTO users")).
		WithArgs(sqlmock.AnyArg(), "user1", "user@example.com", "hash", false).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := repo.Create(context.Background(), &model.User{Name: "user1", Email: " User@Example.com ", PasswordHash: "hash"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserGetByEmailNormalizes(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)
	id := uuid.New()

	mock.ExpectQuery(q("FROM users WHERE email=?")).
		WithArgs("user@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "is_admin", "created_at"}).
			AddRow(id.String(), "user1", "user@example.com", "hash", true, sqlmockNow))

	u, err := repo.GetByEmail(context.Background(), "USER@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.True(t, u.IsAdmin)
}

func TestUserGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(q("FROM users WHERE id=?")).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGenreUpdateDoesNotTouchMovies(t *testing.T) {
	db, mock := newMock(t)
	repo := NewGenreRepo(db)
	id := uuid.New()

	// sqlmock rejects any statement that was not expected, so a write to
	// movies here would fail the test.
	mock.ExpectExec(q("UPDATE genres SET name = ? WHERE id = ?")).
		WithArgs("Thriller", id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), &model.Genre{ID: id, Name: "Thriller"}))
}

func TestGenreDeleteNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewGenreRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT id, name FROM genres WHERE id = ? FOR UPDATE")).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrGenreNotFound)
}

func TestMovieCreateStoresSnapshot(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMovieRepo(db)
	genreID := uuid.New()

	mock.ExpectExec(q("INSERT INTO movies")).
		WithArgs(sqlmock.AnyArg(), "Alien", genreID.String(), "Horror", 3, 2.5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	m := &model.Movie{
		Title:           "Alien",
		Genre:           model.GenreSnapshot{ID: genreID, Name: "Horror"},
		NumberInStock:   3,
		DailyRentalRate: 2.5,
	}
	require.NoError(t, repo.Create(context.Background(), m))
	assert.NotEqual(t, uuid.Nil, m.ID)
}

func TestMovieListScansSnapshot(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMovieRepo(db)
	id, genreID := uuid.New(), uuid.New()

	mock.ExpectQuery(q("FROM movies ORDER BY title")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "genre_id", "genre_name", "number_in_stock", "daily_rental_rate"}).
			AddRow(id.String(), "Alien", genreID.String(), "Horror", 3, 2.5))

	out, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, model.GenreSnapshot{ID: genreID, Name: "Horror"}, out[0].Genre)
	assert.Equal(t, 3, out[0].NumberInStock)
	assert.InDelta(t, 2.5, out[0].DailyRentalRate, 0.0001)
}

func TestMovieGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMovieRepo(db)

	mock.ExpectQuery(q("FROM movies WHERE id = ?")).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestMovieUpdateNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMovieRepo(db)

	mock.ExpectExec(q("UPDATE movies")).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &model.Movie{ID: uuid.New(), Title: "Alien"})
	assert.ErrorIs(t, err, ErrMovieNotFound)
}
