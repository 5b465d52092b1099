package repo

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-commerce-backend/internal/domain"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestUserRepoFindByID(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewUserRepo(gdb)

	rows := sqlmock.NewRows([]string{"id", "email", "role", "is_active"}).
		AddRow(7, "alice@example.com", "customer", true)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs(7, 1).
		WillReturnRows(rows)

	u, err := repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, domain.RoleCustomer, u.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoFindByIDNotFound(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewUserRepo(gdb)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs(99, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepoUpdateMissingRow(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewUserRepo(gdb)

	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), 42, map[string]any{"first_name": "Zed"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoUpdateRefetches(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewUserRepo(gdb)

	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs(5, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "first_name"}).
			AddRow(5, "bob@example.com", "Zed"))

	u, err := repo.Update(context.Background(), 5, map[string]any{"first_name": "Zed"})
	require.NoError(t, err)
	assert.Equal(t, "Zed", u.FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoUpdateEmptyChangesSkipsWrite(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewUserRepo(gdb)

	// no UPDATE expected, only the re-read
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs(5, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(5, "bob@example.com"))

	u, err := repo.Update(context.Background(), 5, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, uint(5), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoDelete(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewUserRepo(gdb)

	mock.ExpectExec(`DELETE FROM "users" WHERE id = \$1`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, deleted)

	// deleting again affects nothing and reports false, not an error
	mock.ExpectExec(`DELETE FROM "users" WHERE id = \$1`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err = repo.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
