package iocache_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gnames/degportal/internal/iocache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses SQLite in short mode")
	}
	ctx := context.Background()
	c, err := iocache.Open(ctx, filepath.Join(t.TempDir(), "documents.sqlite"))
	require.NoError(t, err)
	defer c.Close()

	_, ok, err := c.Get(ctx, "bulk")
	require.NoError(t, err)
	assert.False(t, ok)

	body := []byte(`{"genes":[]}`)
	require.NoError(t, c.Put(ctx, "bulk", "http://x/bulk.json", body))

	e, ok, err := c.Get(ctx, "bulk")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, body, e.Body)
	assert.Equal(t, "http://x/bulk.json", e.Location)
	assert.Equal(t, iocache.ContentID(body), e.ContentID)
	assert.False(t, e.FetchedAt.IsZero())

	// replace
	body2 := []byte(`{"genes":[{"primary_symbol":"A"}]}`)
	require.NoError(t, c.Put(ctx, "bulk", "http://y/bulk.json", body2))
	e, _, err = c.Get(ctx, "bulk")
	require.NoError(t, err)
	assert.Equal(t, body2, e.Body)
	assert.Equal(t, "http://y/bulk.json", e.Location)
}

func TestListDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses SQLite in short mode")
	}
	ctx := context.Background()
	c, err := iocache.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Put(ctx, "pubs", "p.json", []byte("{}")))
	require.NoError(t, c.Put(ctx, "bulk", "b.json", []byte("{}")))

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "bulk", list[0].Name)
	assert.Empty(t, list[0].Body)
	assert.Equal(t, list[0].ContentID, list[1].ContentID, "same body, same id")

	require.NoError(t, c.Delete(ctx, "bulk"))
	list, err = c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestOpenError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses SQLite in short mode")
	}
	_, err := iocache.Open(context.Background(),
		filepath.Join(t.TempDir(), "missing", "dir", "documents.sqlite"))
	assert.Error(t, err)
}
