package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavorites_AddRemoveList(t *testing.T) {
	db := newTestDB(t)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()
	p := seedProperty(t, db)

	f, err := repo.Add(ctx, 2, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, f.PropertyID)

	_, err = repo.Add(ctx, 2, p.ID)
	assert.ErrorIs(t, err, ErrAlreadyFavorite)

	items, total, err := repo.ListByUser(ctx, 2, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Property)
	assert.Equal(t, p.Title, items[0].Property.Title)

	require.NoError(t, repo.Remove(ctx, 2, p.ID))
	assert.ErrorIs(t, repo.Remove(ctx, 2, p.ID), ErrFavoriteNotFound)
}

func TestFavorites_PerUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()
	p := seedProperty(t, db)

	_, err := repo.Add(ctx, 2, p.ID)
	require.NoError(t, err)

	_, total, err := repo.ListByUser(ctx, 3, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}
