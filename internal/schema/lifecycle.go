package schema

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Result is how every lifecycle operation reports: failures land in the
// result object, never in a surfaced error, so callers can always produce a
// structured response.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ok(msg string) Result   { return Result{Success: true, Message: msg} }
func fail(msg string) Result { return Result{Success: false, Message: msg} }

// Manager owns the relational schema lifecycle and the document collections.
// Its operations are idempotent but not safe to run concurrently with
// traffic or with each other; invoke them serially from operator tooling.
type Manager struct {
	db  *gorm.DB
	mdb docStore
	log *zap.Logger
}

// docStore is the slice of *mongo.Database the manager needs; narrowed for
// tests that run relational-only.
type docStore interface {
	ClearCollections(ctx context.Context) error
	DropCollections(ctx context.Context) error
	EnsureCollections(ctx context.Context) error
}

func NewManager(db *gorm.DB, mdb docStore, l *zap.Logger) *Manager {
	return &Manager{db: db, mdb: mdb, log: l}
}

// SoftReset deletes every row child-tables-first, clears both document
// collections and rewinds identity sequences to 1. Schema is preserved.
// A sequence that cannot be rewound (eg. not created yet) is logged and
// skipped.
func (m *Manager) SoftReset(ctx context.Context) Result {
	for _, table := range tablesChildFirst {
		if err := m.db.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
			m.log.Error("soft reset: delete failed", zap.String("table", table), zap.Error(err))
			return fail(fmt.Sprintf("soft reset failed: could not clear %s: %v", table, err))
		}
	}
	if m.mdb != nil {
		if err := m.mdb.ClearCollections(ctx); err != nil {
			m.log.Error("soft reset: clearing document collections failed", zap.Error(err))
			return fail(fmt.Sprintf("soft reset failed: could not clear document collections: %v", err))
		}
	}
	for _, table := range tablesChildFirst {
		stmt := fmt.Sprintf("ALTER SEQUENCE %s_id_seq RESTART WITH 1", table)
		if err := m.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			// 序列可能还不存在，不致命
			m.log.Warn("soft reset: sequence restart skipped",
				zap.String("table", table), zap.Error(err))
		}
	}
	return ok("all tables truncated, document collections cleared, sequences rewound")
}

// HardReset drops every table (current and legacy), enum type and sequence
// with CASCADE, then drops both document collections. Each drop is
// individually fault-tolerant; the reset never aborts half way. Irreversible.
func (m *Manager) HardReset(ctx context.Context) Result {
	failures := 0
	drop := func(stmt, object string) {
		if err := m.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			failures++
			m.log.Error("hard reset: drop failed", zap.String("object", object), zap.Error(err))
		}
	}

	for _, table := range append(append([]string{}, tablesChildFirst...), legacyTables...) {
		drop(fmt.Sprintf(`DROP TABLE IF EXISTS %q CASCADE`, table), table)
	}
	for _, enum := range enumTypes {
		drop(fmt.Sprintf("DROP TYPE IF EXISTS %s CASCADE", enum), enum)
	}
	for _, table := range tablesChildFirst {
		drop(fmt.Sprintf("DROP SEQUENCE IF EXISTS %s_id_seq CASCADE", table), table+"_id_seq")
	}

	if m.mdb != nil {
		if err := m.mdb.DropCollections(ctx); err != nil {
			failures++
			m.log.Error("hard reset: dropping document collections failed", zap.Error(err))
		}
	}

	if failures > 0 {
		return ok(fmt.Sprintf("hard reset finished with %d object(s) skipped; see logs", failures))
	}
	return ok("all tables, types, sequences and document collections dropped")
}

// Recreate rebuilds the relational schema in dependency order (enum types
// first, then parents before children) and re-provisions the document
// collections with their validators and indexes. This is the recovery path
// after a hard reset.
func (m *Manager) Recreate(ctx context.Context) Result {
	for _, stmt := range createEnums {
		if err := m.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			m.log.Error("recreate: enum creation failed", zap.Error(err))
			return fail(fmt.Sprintf("recreate failed while creating enum types: %v", err))
		}
	}
	for i, stmt := range createTables {
		if err := m.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			m.log.Error("recreate: table creation failed",
				zap.String("table", tableNameByCreateIndex(i)), zap.Error(err))
			return fail(fmt.Sprintf("recreate failed while creating %s: %v", tableNameByCreateIndex(i), err))
		}
	}
	if m.mdb != nil {
		if err := m.mdb.EnsureCollections(ctx); err != nil {
			m.log.Error("recreate: document collections failed", zap.Error(err))
			return fail(fmt.Sprintf("recreate failed while provisioning document collections: %v", err))
		}
	}
	return ok("schema recreated: enum types, tables and document collections are in place")
}

// createTables is parent-first, the reverse of tablesChildFirst.
func tableNameByCreateIndex(i int) string {
	return tablesChildFirst[len(tablesChildFirst)-1-i]
}
