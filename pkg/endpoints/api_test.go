package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jackpal/bencode-go"
	"github.com/raywall/tribler-emulator/pkg/config"
	"github.com/raywall/tribler-emulator/pkg/dataset"
	"github.com/raywall/tribler-emulator/pkg/metrics"
	"github.com/raywall/tribler-emulator/pkg/observability"
	"github.com/raywall/tribler-emulator/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unknownKey = "00112233445566778899aabbccddeeff00112233"

type fixture struct {
	world   *dataset.World
	metrics *observability.MemoryProvider
	handler http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.Default().Dataset
	cfg.Seed = 1234
	cfg.Strict = true
	cfg.Torrents = config.Range{Min: 60, Max: 80}
	cfg.Channels = config.Range{Min: 30, Max: 40}
	cfg.ChannelTorrents = config.Range{Min: 5, Max: 20}
	cfg.LedgerBlocks = 5

	world, err := dataset.Generate(cfg, dataset.NewRNG(cfg.Seed))
	require.NoError(t, err)

	mp := observability.NewMemoryProvider()
	return &fixture{world: world, metrics: mp, handler: New(world, mp).Tree()}
}

func (f *fixture) do(t *testing.T, method, target string, form url.Values) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)

	var body map[string]interface{}
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	}
	return rr, body
}

// firstChannelKey devolve a chave pública do primeiro canal listado.
func (f *fixture) firstChannelKey(t *testing.T) string {
	t.Helper()
	page, _ := f.world.QueryChannels(query.DefaultParams(), false)
	require.NotEmpty(t, page)
	return page[0]["public_key"].(string)
}

func TestChannels_List(t *testing.T) {
	f := newFixture(t)

	rr, body := f.do(t, http.MethodGet, "/channels?first=1&last=10&sort_by=votes&sort_asc=0", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	channels := body["channels"].([]interface{})
	assert.Len(t, channels, 10)
	assert.Equal(t, float64(1), body["first"])
	assert.Equal(t, float64(10), body["last"])
	assert.Equal(t, "votes", body["sort_by"])
	assert.Equal(t, false, body["sort_asc"])
	assert.Equal(t, float64(f.world.Counts()["channels"]), body["total"])

	prev := channels[0].(map[string]interface{})["votes"].(float64)
	for _, c := range channels[1:] {
		votes := c.(map[string]interface{})["votes"].(float64)
		assert.LessOrEqual(t, votes, prev)
		prev = votes
	}
}

func TestChannels_ListSubscribedOnly(t *testing.T) {
	f := newFixture(t)

	rr, body := f.do(t, http.MethodGet, "/channels?subscribed=1&last=1000", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(len(f.world.SubscribedIDs())), body["total"])
	for _, c := range body["channels"].([]interface{}) {
		assert.Equal(t, true, c.(map[string]interface{})["subscribed"])
	}
}

func TestChannels_FilterIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)

	// todos os canais se chamam "Channel N"
	rr, body := f.do(t, http.MethodGet, "/channels?filter=CHANNEL&last=1000", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(f.world.Counts()["channels"]), body["total"])

	_, body = f.do(t, http.MethodGet, "/channels?filter=zzz", nil)
	assert.Equal(t, float64(0), body["total"])
	assert.Empty(t, body["channels"])
}

func TestChannels_BadParams(t *testing.T) {
	f := newFixture(t)

	for _, target := range []string{
		"/channels?first=abc",
		"/channels?last=1.5",
		"/channels?sort_asc=maybe",
		"/channels?subscribed=yes",
	} {
		rr, body := f.do(t, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
		assert.NotEmpty(t, body["error"], target)
	}
}

func TestChannels_Popular(t *testing.T) {
	f := newFixture(t)

	rr, body := f.do(t, http.MethodGet, "/channels/popular", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, body["channels"], 20)
}

func TestChannels_Single(t *testing.T) {
	f := newFixture(t)
	pk := f.firstChannelKey(t)

	rr, body := f.do(t, http.MethodGet, "/channels/"+pk, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, pk, body["channel"].(map[string]interface{})["public_key"])

	rr, _ = f.do(t, http.MethodGet, "/channels/"+unknownKey, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = f.do(t, http.MethodGet, "/channels/not-hex", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// hex válido com tamanho errado
	rr, _ = f.do(t, http.MethodGet, "/channels/abcd", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestChannels_Subscribe(t *testing.T) {
	f := newFixture(t)
	pk := f.firstChannelKey(t)
	before := f.world.SubscribedIDs()

	t.Run("missing subscribe is 400 and state unchanged", func(t *testing.T) {
		rr, body := f.do(t, http.MethodPost, "/channels/"+pk, url.Values{})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "subscribe parameter missing", body["error"])
		assert.Equal(t, before, f.world.SubscribedIDs())
	})

	t.Run("non numeric subscribe is 400", func(t *testing.T) {
		rr, _ := f.do(t, http.MethodPost, "/channels/"+pk, url.Values{"subscribe": {"yes"}})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, before, f.world.SubscribedIDs())
	})

	t.Run("subscribe then unsubscribe", func(t *testing.T) {
		rr, body := f.do(t, http.MethodPost, "/channels/"+pk, url.Values{"subscribe": {"1"}})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, true, body["success"])

		_, body = f.do(t, http.MethodGet, "/channels/"+pk, nil)
		assert.Equal(t, true, body["channel"].(map[string]interface{})["subscribed"])

		rr, _ = f.do(t, http.MethodPost, "/channels/"+pk, url.Values{"subscribe": {"0"}})
		require.Equal(t, http.StatusOK, rr.Code)
		_, body = f.do(t, http.MethodGet, "/channels/"+pk, nil)
		assert.Equal(t, false, body["channel"].(map[string]interface{})["subscribed"])
	})

	t.Run("unsubscribe of a not subscribed channel is a no-op", func(t *testing.T) {
		rr, body := f.do(t, http.MethodPost, "/channels/"+pk, url.Values{"subscribe": {"0"}})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, true, body["success"])

		_, body = f.do(t, http.MethodGet, "/channels/"+pk, nil)
		assert.Equal(t, false, body["channel"].(map[string]interface{})["subscribed"])
	})

	t.Run("unknown channel is 404", func(t *testing.T) {
		rr, body := f.do(t, http.MethodPost, "/channels/"+unknownKey, url.Values{"subscribe": {"1"}})
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, false, body["success"])
	})

	assert.NoError(t, f.world.CheckInvariants())
	assert.Equal(t, float64(3), f.metrics.CountOf(metrics.Subscriptions))
}

func TestChannels_Torrents(t *testing.T) {
	f := newFixture(t)
	pk := f.firstChannelKey(t)

	rr, body := f.do(t, http.MethodGet, "/channels/"+pk+"/torrents?first=1&last=3&sort_by=size", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	torrents := body["torrents"].([]interface{})
	assert.LessOrEqual(t, len(torrents), 3)
	assert.GreaterOrEqual(t, body["total"].(float64), float64(len(torrents)))

	rr, _ = f.do(t, http.MethodGet, "/channels/"+unknownKey+"/torrents", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = f.do(t, http.MethodGet, "/channels/"+pk+"/torrents?channel=xyz", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMyChannel_TorrentsExposeStatus(t *testing.T) {
	f := newFixture(t)

	rr, body := f.do(t, http.MethodGet, "/mychannel", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	mine := body["mychannel"].(map[string]interface{})
	assert.Equal(t, "Personal", mine["state"])

	_, body = f.do(t, http.MethodGet, "/channels/"+mine["public_key"].(string)+"/torrents?last=1000", nil)
	for _, item := range body["torrents"].([]interface{}) {
		assert.Contains(t, item.(map[string]interface{}), "status")
	}
}

func TestTorrents(t *testing.T) {
	f := newFixture(t)

	rr, body := f.do(t, http.MethodGet, "/torrents/random", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	random := body["torrents"].([]interface{})
	assert.Len(t, random, 20)
	ih := random[0].(map[string]interface{})["infohash"].(string)

	rr, body = f.do(t, http.MethodGet, "/torrents?last=5", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, body["torrents"], 5)

	rr, body = f.do(t, http.MethodGet, "/torrents/"+ih, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, body["torrent"], "files")

	rr, _ = f.do(t, http.MethodGet, "/torrents/"+unknownKey, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = f.do(t, http.MethodGet, "/torrents/zz", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTorrents_MetainfoIsBencoded(t *testing.T) {
	f := newFixture(t)
	_, body := f.do(t, http.MethodGet, "/torrents/random", nil)
	ih := body["torrents"].([]interface{})[0].(map[string]interface{})["infohash"].(string)

	rr, _ := f.do(t, http.MethodGet, "/torrents/"+ih+"/torrent", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/x-bittorrent", rr.Header().Get("Content-Type"))

	decoded, err := bencode.Decode(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	meta := decoded.(map[string]interface{})
	assert.Contains(t, meta, "info")
	assert.Contains(t, meta, "announce")
}

func TestDownloads(t *testing.T) {
	f := newFixture(t)

	_, body := f.do(t, http.MethodGet, "/downloads", nil)
	before := len(body["downloads"].([]interface{}))
	require.Positive(t, before)

	_, body = f.do(t, http.MethodGet, "/torrents/random", nil)
	ih := body["torrents"].([]interface{})[0].(map[string]interface{})["infohash"].(string)

	t.Run("start appends exactly one download", func(t *testing.T) {
		rr, body := f.do(t, http.MethodPut, "/downloads", url.Values{"infohash": {ih}})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, true, body["started"])
		assert.Equal(t, ih, body["infohash"])

		_, body = f.do(t, http.MethodGet, "/downloads", nil)
		assert.Len(t, body["downloads"], before+1)

		rr, body = f.do(t, http.MethodGet, "/downloads/"+ih, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, ih, body["download"].(map[string]interface{})["infohash"])
	})

	t.Run("invalid infohash is 400", func(t *testing.T) {
		for _, v := range []url.Values{{}, {"infohash": {"abc"}}, {"infohash": {strings.Repeat("g", 40)}}} {
			rr, body := f.do(t, http.MethodPut, "/downloads", v)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, false, body["success"])
		}
	})

	t.Run("unknown torrent is 404", func(t *testing.T) {
		rr, _ := f.do(t, http.MethodPut, "/downloads", url.Values{"infohash": {unknownKey}})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("download not started is 404", func(t *testing.T) {
		rr, body := f.do(t, http.MethodGet, "/downloads/"+unknownKey, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "this download does not exist", body["error"])
	})

	assert.Equal(t, float64(1), f.metrics.CountOf(metrics.DownloadsStart))
}

func TestIPv8(t *testing.T) {
	f := newFixture(t)

	rr, body := f.do(t, http.MethodGet, "/ipv8/trustchain/users/"+unknownKey+"/blocks", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	blocks := body["blocks"].([]interface{})
	assert.Len(t, blocks, 6)
	assert.Equal(t, float64(1), blocks[0].(map[string]interface{})["sequence_number"])

	rr, _ = f.do(t, http.MethodGet, "/ipv8/trustchain/users/xyz/blocks", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	for path, key := range map[string]string{
		"/ipv8/tunnel/circuits":  "circuits",
		"/ipv8/tunnel/relays":    "relays",
		"/ipv8/tunnel/exits":     "exits",
		"/ipv8/dht/statistics":   "statistics",
		"/market/orders":         "orders",
		"/market/transactions":   "transactions",
		"/market/orderbook":      "asks",
		"/settings":              "settings",
		"/ipv8/tunnel/circuits/": "circuits",
	} {
		rr, body := f.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Contains(t, body, key, path)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	f := newFixture(t)

	rr, body := f.do(t, http.MethodDelete, "/channels", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET", rr.Header().Get("Allow"))
	assert.Equal(t, false, body["success"])

	rr, _ = f.do(t, http.MethodPost, "/torrents/random", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr, _ = f.do(t, http.MethodPatch, "/downloads", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, PUT", rr.Header().Get("Allow"))

	for _, path := range []string{"/ipv8", "/ipv8/tunnel", "/ipv8/trustchain/users/abcd", "/market"} {
		rr, _ = f.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, path)
		assert.Empty(t, rr.Header().Get("Allow"), path)
	}
}

func TestUnknownPathIsNotFound(t *testing.T) {
	f := newFixture(t)

	rr, body := f.do(t, http.MethodGet, "/nothing/here", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotEmpty(t, body["error"])
}
