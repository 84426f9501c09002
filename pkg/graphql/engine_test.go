package graphql

import (
	"context"
	"testing"

	"github.com/raywall/tribler-emulator/pkg/config"
	"github.com/raywall/tribler-emulator/pkg/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) (*GraphQLEngine, *dataset.World) {
	t.Helper()
	cfg := config.Default().Dataset
	cfg.Seed = 99
	cfg.Torrents = config.Range{Min: 30, Max: 40}
	cfg.Channels = config.Range{Min: 10, Max: 15}
	cfg.ChannelTorrents = config.Range{Min: 3, Max: 10}
	cfg.LedgerBlocks = 3

	world, err := dataset.Generate(cfg, dataset.NewRNG(cfg.Seed))
	require.NoError(t, err)

	engine, err := NewGraphQLEngine(world)
	require.NoError(t, err)
	return engine, world
}

func TestNewGraphQLEngine(t *testing.T) {
	engine, _ := newEngine(t)
	schema := engine.Schema

	for _, name := range []string{"Channel", "Torrent", "Download", "Block", "ChannelPage", "TorrentPage"} {
		assert.NotNil(t, schema.Type(name), name)
	}

	queryType := schema.QueryType()
	for _, field := range []string{"channels", "torrents", "channel", "mychannel", "downloads", "blocks"} {
		assert.NotNil(t, queryType.Fields()[field], field)
	}

	// Introspecção garante que o schema é válido internamente
	res := engine.Execute(context.Background(), "{ __schema { types { name } } }", nil)
	assert.Empty(t, res.Errors)
}
