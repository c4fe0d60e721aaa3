package catalog

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleItemsAreUniqueAndOrdered(t *testing.T) {
	items := SampleItems()
	require.Len(t, items, 40)

	seen := make(map[int]bool)
	for i, it := range items {
		assert.False(t, seen[it.ID], "duplicate id %d", it.ID)
		seen[it.ID] = true
		assert.Equal(t, i+1, it.ID, "dataset order follows ids")
		assert.NotEmpty(t, it.Title)
	}
}

func TestSampleItemsReturnsCopy(t *testing.T) {
	items := SampleItems()
	items[0].Title = "changed"

	assert.Equal(t, "Apple MacBook Pro", SampleItems()[0].Title)
}

func TestMemoryStoreDefaultsToSample(t *testing.T) {
	s := NewMemoryStore(nil)

	items, err := s.Items(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 40)
	assert.Equal(t, "memory", s.Mode())
}

func TestOpenPostgresRejectsEmptyDSN(t *testing.T) {
	_, err := OpenPostgres(context.Background(), "  ")
	assert.Error(t, err)
}

func TestPostgresStoreSeedsCatalog(t *testing.T) {
	dsn := os.Getenv("QUICKFIND_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("QUICKFIND_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	s, err := OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()

	items, err := s.Items(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(items), 40)
	assert.Equal(t, "postgres", s.Mode())
	for i := 1; i < len(items); i++ {
		assert.Less(t, items[i-1].ID, items[i].ID)
	}
}
