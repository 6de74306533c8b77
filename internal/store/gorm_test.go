package store

import (
	"context"
	"testing"

	"github.com/justsurfingit/job-seeker-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// every sqlite :memory: connection is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newTestGormStore(t *testing.T) *GormStore {
	s := NewGormStore(setupTestDB(t))
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestGormStore_Contract(t *testing.T) {
	s := newTestGormStore(t)
	runRepositoryContract(t, s.Jobs(), s.Applications())
}

func TestGormStore_NumericUpdateIsNoopWhenEqual(t *testing.T) {
	jobs := newTestGormStore(t).Jobs()
	ctx := context.Background()

	res, err := jobs.Insert(ctx, models.Job{Title: "Engineer", Fields: map[string]any{"salary": 100}})
	require.NoError(t, err)

	// stored as JSON, so int and float64 of the same value are equal
	upd, err := jobs.Update(ctx, res.InsertedID, map[string]any{"salary": float64(100)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), upd.MatchedCount)
	assert.Equal(t, int64(0), upd.ModifiedCount)
}

func TestGormStore_MigrateIsIdempotent(t *testing.T) {
	s := newTestGormStore(t)
	assert.NoError(t, s.Migrate(context.Background()))
}
