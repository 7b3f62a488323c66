package cmd

import (
	"context"
	"testing"

	"github.com/gnames/degportal/internal/iotesting"
	"github.com/gnames/degportal/pkg/catalog"
	"github.com/gnames/degportal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(t *testing.T, pubsPath string) *session {
	if testing.Short() {
		t.Skip("skipping test that uses SQLite in short mode")
	}
	cfg = iotesting.Config(t)
	ts := iotesting.Server(t, map[string]string{
		"/bulk.json":    iotesting.GenesJSON,
		"/spatial.json": iotesting.SpatialJSON,
		"/pubs.json":    iotesting.PublicationsJSON,
	})
	iotesting.WriteCatalog(t, cfg, []catalog.Document{
		{Name: "bulk", Kind: catalog.Genes, Location: ts.URL + "/bulk.json"},
		{Name: "spatial", Kind: catalog.Genes, Location: ts.URL + "/spatial.json"},
		{Name: "pubs", Kind: catalog.Publications, Location: ts.URL + pubsPath},
	})

	s, err := openSession(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestSessionLoads(t *testing.T) {
	s := testSession(t, "/pubs.json")
	require.NotNil(t, s.cache, "cache is enabled by default")

	ctx := context.Background()
	genes, err := s.genes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, genes.Len())
	assert.Equal(t, 1, genes.Duplicates())

	pubs, err := s.publications(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, pubs.Len())

	entries, err := s.cache.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "fetched documents are cached")
}

func TestSessionLoadAll(t *testing.T) {
	s := testSession(t, "/missing.json")

	d := s.loadAll(context.Background())
	require.NotNil(t, d.Genes)
	assert.NoError(t, d.GenesErr)
	assert.Nil(t, d.Publications)
	assert.Error(t, d.PublicationsErr)
}

func TestSessionWithoutCache(t *testing.T) {
	cfg = iotesting.Config(t)
	off := false
	cfg.Update([]config.Option{config.OptFetchUseCache(&off)})
	iotesting.WriteCatalog(t, cfg, []catalog.Document{
		{Name: "bulk", Kind: catalog.Genes, Location: "/nonexistent/bulk.json"},
	})

	s, err := openSession(context.Background(), cfg)
	require.NoError(t, err)
	defer s.Close()
	assert.Nil(t, s.cache)

	_, err = s.genes(context.Background())
	assert.Error(t, err)
}
