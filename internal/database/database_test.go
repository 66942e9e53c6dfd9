package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewSQLiteInMemory(t *testing.T) {
	ctx := context.Background()
	db, err := New(ctx, "sqlite:///:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.True(t, db.IsSQLite())
	assert.False(t, db.IsPostgres())
}

func TestNewUnsupportedScheme(t *testing.T) {
	_, err := New(context.Background(), "mysql://localhost/db")
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestWithTransactionCommits(t *testing.T) {
	ctx := context.Background()
	db, err := New(ctx, "sqlite:///:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Session(ctx).Exec(`CREATE TABLE items (name TEXT)`).Error)

	err = WithTransaction(ctx, db, func(tx *gorm.DB) error {
		return tx.Exec(`INSERT INTO items (name) VALUES ('a')`).Error
	})
	require.NoError(t, err)

	var n int64
	require.NoError(t, db.Session(ctx).Table("items").Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db, err := New(ctx, "sqlite:///:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Session(ctx).Exec(`CREATE TABLE items (name TEXT)`).Error)

	err = WithTransaction(ctx, db, func(tx *gorm.DB) error {
		if err := tx.Exec(`INSERT INTO items (name) VALUES ('a')`).Error; err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	var n int64
	require.NoError(t, db.Session(ctx).Table("items").Count(&n).Error)
	assert.Equal(t, int64(0), n)
}
