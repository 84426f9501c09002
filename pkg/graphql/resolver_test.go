package graphql

import (
	"context"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/raywall/tribler-emulator/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func data(t *testing.T, res *graphql.Result) map[string]interface{} {
	t.Helper()
	require.False(t, res.HasErrors(), "%v", res.Errors)
	out, ok := res.Data.(map[string]interface{})
	require.True(t, ok)
	return out
}

func TestResolveChannels_Paginated(t *testing.T) {
	engine, world := newEngine(t)

	res := engine.Execute(context.Background(),
		`{ channels(first: 1, last: 3, sort_by: "votes", sort_asc: false) { total channels { id name votes } } }`, nil)
	out := data(t, res)

	page := out["channels"].(map[string]interface{})
	assert.Equal(t, world.Counts()["channels"], page["total"])
	channels := page["channels"].([]interface{})
	require.Len(t, channels, 3)
	first := channels[0].(map[string]interface{})["votes"].(int)
	second := channels[1].(map[string]interface{})["votes"].(int)
	assert.GreaterOrEqual(t, first, second)
}

func TestResolveChannels_SubscribedOnly(t *testing.T) {
	engine, world := newEngine(t)

	res := engine.Execute(context.Background(), `{ channels(subscribed: true, last: 1000) { total channels { subscribed } } }`, nil)
	out := data(t, res)

	page := out["channels"].(map[string]interface{})
	assert.Equal(t, len(world.SubscribedIDs()), page["total"])
	for _, c := range page["channels"].([]interface{}) {
		assert.Equal(t, true, c.(map[string]interface{})["subscribed"])
	}
}

func TestResolveChannel_AndItsTorrents(t *testing.T) {
	engine, world := newEngine(t)
	mine, err := world.MyChannel()
	require.NoError(t, err)
	pk := mine["public_key"].(string)

	res := engine.Execute(context.Background(),
		`query($pk: String!) { channel(public_key: $pk) { name state } torrents(channel: $pk, last: 100) { total torrents { infohash status } } }`,
		map[string]interface{}{"pk": pk})
	out := data(t, res)

	assert.Equal(t, "Personal", out["channel"].(map[string]interface{})["state"])
	torrents := out["torrents"].(map[string]interface{})
	for _, tor := range torrents["torrents"].([]interface{}) {
		assert.NotNil(t, tor.(map[string]interface{})["status"])
	}
}

func TestResolveChannel_Errors(t *testing.T) {
	engine, _ := newEngine(t)

	res := engine.Execute(context.Background(), `{ channel(public_key: "zz") { name } }`, nil)
	assert.True(t, res.HasErrors())

	res = engine.Execute(context.Background(), `{ channel(public_key: "00112233445566778899aabbccddeeff00112233") { name } }`, nil)
	assert.True(t, res.HasErrors())

	res = engine.Execute(context.Background(), `{ torrents(channel: "abc") { total } }`, nil)
	assert.True(t, res.HasErrors())
}

func TestResolveDownloadsAndBlocks(t *testing.T) {
	engine, world := newEngine(t)

	res := engine.Execute(context.Background(), `{ downloads { infohash progress } blocks { sequence_number hash } torrents { total } }`, nil)
	out := data(t, res)

	assert.Len(t, out["downloads"], len(world.Downloads()))
	blocks := out["blocks"].([]interface{})
	require.Len(t, blocks, 4)
	assert.Equal(t, 1, blocks[0].(map[string]interface{})["sequence_number"])
	assert.Equal(t, world.Counts()["torrents"], out["torrents"].(map[string]interface{})["total"])
}

func TestToParams(t *testing.T) {
	p := toParams(map[string]interface{}{"first": 2, "last": 9, "sort_by": "name", "sort_asc": false, "filter": "x"})
	assert.Equal(t, query.Params{First: 2, Last: 9, SortBy: "name", SortAsc: false, Filter: "x"}, p)

	assert.Equal(t, query.DefaultParams(), toParams(map[string]interface{}{}))
}
