package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeDocStore struct {
	cleared, dropped, ensured int
	err                       error
}

func (f *fakeDocStore) ClearCollections(context.Context) error { f.cleared++; return f.err }
func (f *fakeDocStore) DropCollections(context.Context) error  { f.dropped++; return f.err }
func (f *fakeDocStore) EnsureCollections(context.Context) error {
	f.ensured++
	return f.err
}

func newTestManager(t *testing.T, docs docStore) (*Manager, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewManager(gdb, docs, zap.NewNop()), mock
}

func TestSoftResetDeletesChildTablesFirst(t *testing.T) {
	docs := &fakeDocStore{}
	m, mock := newTestManager(t, docs)

	// deletes run children before parents so foreign keys never block
	for _, table := range []string{"order_items", "orders", "products", "categories", "users"} {
		mock.ExpectExec("DELETE FROM " + table).WillReturnResult(sqlmock.NewResult(0, 3))
	}
	for _, table := range []string{"order_items", "orders", "products", "categories", "users"} {
		mock.ExpectExec("ALTER SEQUENCE " + table + "_id_seq RESTART WITH 1").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	res := m.SoftReset(context.Background())
	assert.True(t, res.Success)
	assert.Equal(t, 1, docs.cleared)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftResetSequenceFailureIsNotFatal(t *testing.T) {
	docs := &fakeDocStore{}
	m, mock := newTestManager(t, docs)

	for _, table := range []string{"order_items", "orders", "products", "categories", "users"} {
		mock.ExpectExec("DELETE FROM " + table).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("ALTER SEQUENCE order_items_id_seq").
		WillReturnError(errors.New(`relation "order_items_id_seq" does not exist`))
	for _, table := range []string{"orders", "products", "categories", "users"} {
		mock.ExpectExec("ALTER SEQUENCE " + table + "_id_seq").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	res := m.SoftReset(context.Background())
	assert.True(t, res.Success, "a missing sequence must not fail the reset")
}

func TestSoftResetDeleteFailureAborts(t *testing.T) {
	docs := &fakeDocStore{}
	m, mock := newTestManager(t, docs)

	mock.ExpectExec("DELETE FROM order_items").
		WillReturnError(errors.New("permission denied"))

	res := m.SoftReset(context.Background())
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "order_items")
	assert.Zero(t, docs.cleared, "document side is untouched when the relational side fails")
}

func TestHardResetSurvivesIndividualFailures(t *testing.T) {
	docs := &fakeDocStore{}
	m, mock := newTestManager(t, docs)

	// 5 current + 5 legacy tables, then 3 types, then 5 sequences
	for i := 0; i < 10; i++ {
		if i == 2 {
			mock.ExpectExec("DROP TABLE IF EXISTS").
				WillReturnError(errors.New("lock timeout"))
			continue
		}
		mock.ExpectExec("DROP TABLE IF EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for i := 0; i < 3; i++ {
		mock.ExpectExec("DROP TYPE IF EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for i := 0; i < 5; i++ {
		mock.ExpectExec("DROP SEQUENCE IF EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	res := m.HardReset(context.Background())
	assert.True(t, res.Success, "hard reset reports completion even with skips")
	assert.Contains(t, res.Message, "1 object(s) skipped")
	assert.Equal(t, 1, docs.dropped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHardResetDropsLegacyTables(t *testing.T) {
	docs := &fakeDocStore{}
	m, mock := newTestManager(t, docs)

	for _, table := range []string{"order_items", "orders", "products", "categories", "users",
		"app_users", "app_products", "discounts", "discount_categories", "migrations"} {
		mock.ExpectExec(`DROP TABLE IF EXISTS "` + table + `" CASCADE`).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for i := 0; i < 3; i++ {
		mock.ExpectExec("DROP TYPE IF EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for i := 0; i < 5; i++ {
		mock.ExpectExec("DROP SEQUENCE IF EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	res := m.HardReset(context.Background())
	assert.True(t, res.Success)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecreateRunsEnumsBeforeTables(t *testing.T) {
	docs := &fakeDocStore{}
	m, mock := newTestManager(t, docs)

	for i := 0; i < 3; i++ {
		mock.ExpectExec("CREATE TYPE").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for _, table := range []string{"users", "categories", "products", "orders", "order_items"} {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + table).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	res := m.Recreate(context.Background())
	assert.True(t, res.Success)
	assert.Equal(t, 1, docs.ensured)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecreateAbortsOnFirstFailure(t *testing.T) {
	docs := &fakeDocStore{}
	m, mock := newTestManager(t, docs)

	mock.ExpectExec("CREATE TYPE").WillReturnError(errors.New("syntax error"))

	res := m.Recreate(context.Background())
	assert.False(t, res.Success)
	assert.Zero(t, docs.ensured)
}

func TestManagerWithoutDocStore(t *testing.T) {
	m, mock := newTestManager(t, nil)

	for _, table := range []string{"order_items", "orders", "products", "categories", "users"} {
		mock.ExpectExec("DELETE FROM " + table).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for range tablesChildFirst {
		mock.ExpectExec("ALTER SEQUENCE").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	res := m.SoftReset(context.Background())
	assert.True(t, res.Success)
}
