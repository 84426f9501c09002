package models

import (
	"bytes"
	"testing"
	"time"

	"github.com/jackpal/bencode-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTorrent_ToJSON(t *testing.T) {
	tor := RandomTorrent(testRNG())
	tor.Status = StatusNew

	wire := tor.ToJSON(false)
	assert.Equal(t, tor.Infohash.String(), wire["infohash"])
	assert.NotContains(t, wire, "status")
	assert.Contains(t, Categories, wire["category"])
	assert.Positive(t, tor.Length)

	assert.Equal(t, StatusNew, tor.ToJSON(true)["status"])

	detail := tor.DetailJSON(false)
	assert.Len(t, detail["files"], len(tor.Files))
	assert.Contains(t, detail, "time_added")
	assert.NotContains(t, detail, "status")
	assert.Equal(t, StatusNew, tor.DetailJSON(true)["status"])
}

func TestChannel_ToJSON(t *testing.T) {
	rng := testRNG()
	torrents := []*Torrent{RandomTorrent(rng), RandomTorrent(rng)}
	c := NewChannel(rng, 4, torrents)

	wire := c.ToJSON(false)
	assert.Equal(t, "Channel 4", wire["name"])
	assert.Equal(t, "Description of channel 4", wire["description"])
	assert.Equal(t, 2, wire["torrents"])
	assert.Equal(t, "Complete", wire["state"])
	assert.Equal(t, "Personal", c.ToJSON(true)["state"])
}

func TestDownload_Files(t *testing.T) {
	rng := testRNG()
	tor := RandomTorrent(rng)

	plain := NewDownload(rng, tor)
	assert.Len(t, plain.ToJSON()["files"], len(tor.Files))

	media := NewDownload(rng, tor, WithMediaFile("video.avi", 5000), WithCreditMining())
	files := media.ToJSON()["files"].([]DownloadFile)
	require.Len(t, files, 1)
	assert.Equal(t, "video.avi", files[0].Name)
	assert.Equal(t, int64(5000), files[0].Size)
	assert.Equal(t, true, media.ToJSON()["credit_mining"])

	channel := NewDownload(rng, tor, WithChannelDownload())
	assert.Equal(t, true, channel.ToJSON()["channel_download"])
	assert.Same(t, tor, channel.Torrent)
}

func TestLedgerBlock_Chain(t *testing.T) {
	rng := testRNG()
	owner := RandomHashID(rng)
	ts := time.Unix(1_600_000_000, 0)

	genesis := NewLedgerBlock(rng, owner, ts, nil, GenesisIndex)
	assert.Equal(t, uint64(1), genesis.SequenceNumber)
	assert.Equal(t, GenesisHash, genesis.PreviousHash)

	next := NewLedgerBlock(rng, owner, ts.Add(24*time.Hour), genesis, 0)
	assert.Equal(t, uint64(2), next.SequenceNumber)
	assert.Equal(t, 0, next.PreviousIndex)
	assert.Equal(t, genesis.Hash, next.PreviousHash)
	assert.NotEqual(t, genesis.Hash, next.Hash)
	assert.Equal(t, genesis.Transaction.TotalUp+next.Transaction.Up, next.Transaction.TotalUp)

	// o hash é função dos campos do bloco
	assert.Equal(t, next.Hash, next.computeHash())

	wire := next.ToJSON()
	assert.Equal(t, genesis.Hash.String(), wire["previous_hash"])
	assert.Equal(t, owner.String(), wire["public_key"])
}

func TestTorrent_Metainfo(t *testing.T) {
	tor := RandomTorrent(testRNG())

	data, err := tor.Metainfo()
	require.NoError(t, err)

	decoded, err := bencode.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	meta := decoded.(map[string]interface{})
	info := meta["info"].(map[string]interface{})

	assert.Equal(t, tor.Name, info["name"])
	assert.Len(t, info["files"], len(tor.Files))
	assert.Equal(t, 0, len(info["pieces"].(string))%20)
}

func TestMarketAndTunnels(t *testing.T) {
	rng := testRNG()

	ask := NewTick(rng, "DUM1", "DUM2", true)
	assert.NotEmpty(t, ask.ToJSON())
	assert.NotEmpty(t, NewOrder(rng, "DUM1", "DUM2").ToJSON())
	assert.NotEmpty(t, NewTransaction(rng, "DUM1", "DUM2").ToJSON())

	assert.NotEmpty(t, NewCircuit(rng).ToJSON())
	assert.NotEmpty(t, NewRelay(rng).ToJSON())
	assert.NotEmpty(t, NewExitSocket(rng).ToJSON())

	stats := NewDHTStatistics(rng)
	assert.Len(t, stats.NodeID, 40)
}
