package dataset

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/raywall/tribler-emulator/pkg/config"
	"github.com/raywall/tribler-emulator/pkg/models"
)

const (
	day = 24 * time.Hour

	maxStatusChanges  = 10
	marketAssetFirst  = "DUM1"
	marketAssetSecond = "DUM2"
)

// EffectiveSeed devolve a seed realmente usada: zero é trocado pelo relógio.
// Reusar o valor devolvido reproduz o mesmo World.
func EffectiveSeed(seed uint64) uint64 {
	for seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return seed
}

// NewRNG cria a fonte pseudo-aleatória. Seed zero usa o relógio.
func NewRNG(seed uint64) *rand.Rand {
	seed = EffectiveSeed(seed)
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate constrói o World em uma única passada. As etapas seguem uma ordem fixa
// porque as posteriores referenciam as coleções das anteriores.
func Generate(cfg config.GeneratorConf, rng *rand.Rand) (*World, error) {
	torrents := generateTorrents(rng, cfg.Torrents)

	channels := generateChannels(rng, cfg, torrents)
	myChannel := NoChannel
	if cfg.CreateMyChannel {
		idx, err := pickMyChannel(rng, channels)
		if err != nil {
			return nil, fmt.Errorf("falha ao escolher o canal próprio: %w", err)
		}
		myChannel = idx
	}

	subscribed := assignSubscriptions(rng, channels)
	downloads := generateDownloads(rng, torrents)
	ledger := generateLedger(rng, cfg.LedgerBlocks, time.Now())
	orderBook := generateOrderBook(rng)
	transactions := generateTransactions(rng)
	orders := generateOrders(rng)
	dht := models.NewDHTStatistics(rng)
	circuits, relays, exits := generateTunnels(rng)
	settings := buildSettings(rng)

	w := &World{
		channels:     channels,
		channelIndex: make(map[models.HashID]int, len(channels)),
		torrents:     torrents,
		torrentIndex: make(map[models.HashID]*models.Torrent, len(torrents)),
		subscribed:   subscribed,
		downloads:    downloads,
		myChannel:    myChannel,
		ledger:       ledger,
		orderBook:    orderBook,
		transactions: transactions,
		orders:       orders,
		dht:          dht,
		circuits:     circuits,
		relays:       relays,
		exits:        exits,
		settings:     settings,
		rng:          rng,
		sampleSize:   cfg.SampleSize,
		strict:       cfg.Strict,
	}
	for i, c := range channels {
		w.channelIndex[c.PublicKey] = i
	}
	for _, t := range torrents {
		w.torrentIndex[t.Infohash] = t
	}

	if err := w.checkInvariantsLocked(); err != nil {
		return nil, err
	}
	return w, nil
}

func randIn(rng *rand.Rand, r config.Range) int {
	return models.RandInt(rng, r.Min, r.Max)
}

// generateTorrents cria o pool independente. Infohashes são únicos.
func generateTorrents(rng *rand.Rand, count config.Range) []*models.Torrent {
	n := randIn(rng, count)
	seen := make(map[models.HashID]struct{}, n)
	torrents := make([]*models.Torrent, 0, n)
	for len(torrents) < n {
		t := models.RandomTorrent(rng)
		if _, dup := seen[t.Infohash]; dup {
			continue
		}
		seen[t.Infohash] = struct{}{}
		torrents = append(torrents, t)
	}
	return torrents
}

// generateChannels cria os canais, cada um com um subconjunto do pool.
// Se o canal próprio for pedido, parte dos seus torrents é marcada como new/todelete.
func generateChannels(rng *rand.Rand, cfg config.GeneratorConf, pool []*models.Torrent) []*models.Channel {
	n := randIn(rng, cfg.Channels)
	seen := make(map[models.HashID]struct{}, n)
	channels := make([]*models.Channel, 0, n)
	for i := 0; i < n; i++ {
		subset := sample(rng, pool, randIn(rng, cfg.ChannelTorrents))
		c := models.NewChannel(rng, i, subset)
		for {
			if _, dup := seen[c.PublicKey]; !dup {
				break
			}
			c.PublicKey = models.RandomHashID(rng)
		}
		seen[c.PublicKey] = struct{}{}
		channels = append(channels, c)
	}
	return channels
}

// pickMyChannel escolhe o canal próprio e marca alterações pendentes nos seus torrents.
// Os dois sorteios são independentes; em caso de sobreposição vale o último (todelete).
func pickMyChannel(rng *rand.Rand, channels []*models.Channel) (int, error) {
	if len(channels) == 0 {
		return NoChannel, ErrEmptyPool
	}
	idx := rng.IntN(len(channels))
	mine := channels[idx]

	for _, t := range sample(rng, mine.Torrents, maxStatusChanges) {
		t.Status = models.StatusNew
	}
	for _, t := range sample(rng, mine.Torrents, maxStatusChanges) {
		t.Status = models.StatusToDelete
	}
	return idx, nil
}

// assignSubscriptions sorteia de 10 a 20 canais (com repetição) e atualiza,
// juntos, o conjunto e a flag de cada canal.
func assignSubscriptions(rng *rand.Rand, channels []*models.Channel) map[int]struct{} {
	subscribed := make(map[int]struct{})
	if len(channels) == 0 {
		return subscribed
	}
	picks := models.RandInt(rng, 10, 20)
	for i := 0; i < picks; i++ {
		c := channels[rng.IntN(len(channels))]
		subscribed[c.ID] = struct{}{}
		c.Subscribed = true
	}
	return subscribed
}

// generateDownloads garante que o primeiro download seja de mídia (para o fluxo de play).
func generateDownloads(rng *rand.Rand, pool []*models.Torrent) []*models.Download {
	if len(pool) == 0 {
		return []*models.Download{}
	}
	pick := func() *models.Torrent { return pool[rng.IntN(len(pool))] }

	downloads := []*models.Download{
		models.NewDownload(rng, pick(), models.WithMediaFile("video.avi", int64(models.RandInt(rng, 1000, 10000000)))),
	}
	for i, n := 0, models.RandInt(rng, 10, 30); i < n; i++ {
		downloads = append(downloads, models.NewDownload(rng, pick()))
	}
	for i, n := 0, models.RandInt(rng, 1, 5); i < n; i++ {
		downloads = append(downloads, models.NewDownload(rng, pick(), models.WithCreditMining()))
	}
	for i, n := 0, models.RandInt(rng, 1, 5); i < n; i++ {
		downloads = append(downloads, models.NewDownload(rng, pick(), models.WithChannelDownload()))
	}
	return downloads
}

// generateLedger cria o gênese em now - n dias e mais n blocos, um por dia.
func generateLedger(rng *rand.Rand, n int, now time.Time) []*models.LedgerBlock {
	owner := models.RandomHashID(rng)
	ts := now.Add(-time.Duration(n) * day)

	chain := make([]*models.LedgerBlock, 0, n+1)
	chain = append(chain, models.NewLedgerBlock(rng, owner, ts, nil, models.GenesisIndex))
	for i := 0; i < n; i++ {
		ts = ts.Add(day)
		prevIndex := len(chain) - 1
		chain = append(chain, models.NewLedgerBlock(rng, owner, ts, chain[prevIndex], prevIndex))
	}
	return chain
}

func generateOrderBook(rng *rand.Rand) models.OrderBook {
	book := models.OrderBook{}
	for i, n := 0, models.RandInt(rng, 20, 50); i < n; i++ {
		book.Asks = append(book.Asks, models.NewTick(rng, marketAssetFirst, marketAssetSecond, true))
	}
	for i, n := 0, models.RandInt(rng, 20, 50); i < n; i++ {
		book.Bids = append(book.Bids, models.NewTick(rng, marketAssetFirst, marketAssetSecond, false))
	}
	return book
}

func generateTransactions(rng *rand.Rand) []*models.Transaction {
	n := models.RandInt(rng, 20, 50)
	out := make([]*models.Transaction, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.NewTransaction(rng, marketAssetFirst, marketAssetSecond))
	}
	return out
}

func generateOrders(rng *rand.Rand) []*models.Order {
	n := models.RandInt(rng, 20, 50)
	out := make([]*models.Order, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.NewOrder(rng, marketAssetFirst, marketAssetSecond))
	}
	return out
}

func generateTunnels(rng *rand.Rand) ([]*models.Circuit, []*models.Relay, []*models.ExitSocket) {
	circuits := make([]*models.Circuit, models.RandInt(rng, 2, 10))
	for i := range circuits {
		circuits[i] = models.NewCircuit(rng)
	}
	relays := make([]*models.Relay, models.RandInt(rng, 2, 10))
	for i := range relays {
		relays[i] = models.NewRelay(rng)
	}
	exits := make([]*models.ExitSocket, models.RandInt(rng, 2, 10))
	for i := range exits {
		exits[i] = models.NewExitSocket(rng)
	}
	return circuits, relays, exits
}

// sample sorteia até k elementos distintos do pool. Pool vazio devolve vazio.
func sample[T any](rng *rand.Rand, pool []T, k int) []T {
	idx := sampleIndexes(rng, len(pool), k)
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}

func sampleIndexes(rng *rand.Rand, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return []int{}
	}
	return rng.Perm(n)[:k]
}
