package dataset

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/raywall/tribler-emulator/pkg/models"
	"github.com/raywall/tribler-emulator/pkg/query"
)

var (
	ErrChannelNotFound  = errors.New("the channel with the provided public key is not known")
	ErrTorrentNotFound  = errors.New("the torrent with the provided infohash is not known")
	ErrDownloadNotFound = errors.New("this download does not exist")
	ErrNoMyChannel      = errors.New("your channel has not been created")
	ErrEmptyPool        = errors.New("cannot pick from an empty pool")
	ErrInvariant        = errors.New("dataset invariant violated")
)

// NoChannel indica que o usuário não possui canal próprio.
const NoChannel = -1

// World é o agregado em memória com todas as entidades geradas. É construído
// uma única vez por Generate e depois só muda por Subscribe e StartDownload.
type World struct {
	mu sync.RWMutex

	channels     []*models.Channel
	channelIndex map[models.HashID]int
	torrents     []*models.Torrent
	torrentIndex map[models.HashID]*models.Torrent
	subscribed   map[int]struct{}
	downloads    []*models.Download
	myChannel    int

	ledger       []*models.LedgerBlock
	orderBook    models.OrderBook
	transactions []*models.Transaction
	orders       []*models.Order
	dht          models.DHTStatistics
	circuits     []*models.Circuit
	relays       []*models.Relay
	exits        []*models.ExitSocket
	settings     map[string]interface{}

	// rng é usado nas amostras feitas por requisição; protegido por rngMu
	rngMu      sync.Mutex
	rng        *rand.Rand
	sampleSize int
	strict     bool
}

// --- Canais ---

// QueryChannels aplica o motor de consulta sobre os canais (ou apenas os assinados).
func (w *World) QueryChannels(p query.Params, subscribedOnly bool) ([]query.Item, int) {
	w.mu.RLock()
	source := w.channels
	if subscribedOnly {
		source = w.subscribedChannelsLocked()
	}
	items := query.Serialize(source, w.channelJSONLocked)
	w.mu.RUnlock()

	return query.Run(items, p)
}

func (w *World) subscribedChannelsLocked() []*models.Channel {
	ids := make([]int, 0, len(w.subscribed))
	for id := range w.subscribed {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]*models.Channel, 0, len(ids))
	for _, id := range ids {
		out = append(out, w.channels[id])
	}
	return out
}

func (w *World) channelJSONLocked(c *models.Channel) query.Item {
	return c.ToJSON(c.ID == w.myChannel)
}

// Channel devolve o canal com a chave pública informada.
func (w *World) Channel(pk models.HashID) (query.Item, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	idx, ok := w.channelIndex[pk]
	if !ok {
		return nil, ErrChannelNotFound
	}
	return w.channelJSONLocked(w.channels[idx]), nil
}

// MyChannel devolve o canal próprio, se existir.
func (w *World) MyChannel() (query.Item, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.myChannel == NoChannel {
		return nil, ErrNoMyChannel
	}
	return w.channelJSONLocked(w.channels[w.myChannel]), nil
}

// ChannelTorrents aplica o motor de consulta sobre os torrents de um canal.
// O status dos torrents só é exposto no canal próprio.
func (w *World) ChannelTorrents(pk models.HashID, p query.Params) ([]query.Item, int, error) {
	w.mu.RLock()
	idx, ok := w.channelIndex[pk]
	if !ok {
		w.mu.RUnlock()
		return nil, 0, ErrChannelNotFound
	}
	channel := w.channels[idx]
	mine := idx == w.myChannel
	items := query.Serialize(channel.Torrents, func(t *models.Torrent) query.Item {
		return t.ToJSON(mine)
	})
	w.mu.RUnlock()

	page, total := query.Run(items, p)
	return page, total, nil
}

// PopularChannels devolve uma amostra aleatória de canais.
func (w *World) PopularChannels() []query.Item {
	w.mu.RLock()
	defer w.mu.RUnlock()

	picked := w.sample(len(w.channels))
	out := make([]query.Item, 0, len(picked))
	for _, i := range picked {
		out = append(out, w.channelJSONLocked(w.channels[i]))
	}
	return out
}

// Subscribe assina ou cancela a assinatura do canal. O conjunto de assinaturas
// e a flag do canal mudam na mesma seção crítica.
func (w *World) Subscribe(pk models.HashID, subscribe bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx, ok := w.channelIndex[pk]
	if !ok {
		return ErrChannelNotFound
	}

	channel := w.channels[idx]
	if subscribe {
		w.subscribed[channel.ID] = struct{}{}
		channel.Subscribed = true
	} else {
		delete(w.subscribed, channel.ID)
		channel.Subscribed = false
	}

	if w.strict {
		if err := w.checkInvariantsLocked(); err != nil {
			panic(err)
		}
	}
	return nil
}

// SubscribedIDs lista os IDs assinados em ordem crescente.
func (w *World) SubscribedIDs() []int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	ids := make([]int, 0, len(w.subscribed))
	for id := range w.subscribed {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// CheckInvariants verifica que o conjunto de assinaturas e as flags dos canais concordam.
func (w *World) CheckInvariants() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.checkInvariantsLocked()
}

func (w *World) checkInvariantsLocked() error {
	for _, c := range w.channels {
		_, inSet := w.subscribed[c.ID]
		if inSet != c.Subscribed {
			return fmt.Errorf("%w: channel %d subscribed=%t but set membership=%t", ErrInvariant, c.ID, c.Subscribed, inSet)
		}
	}
	for id := range w.subscribed {
		if id < 0 || id >= len(w.channels) {
			return fmt.Errorf("%w: subscription to unknown channel %d", ErrInvariant, id)
		}
	}
	return nil
}

// --- Torrents ---

// QueryTorrents aplica o motor de consulta sobre o pool completo de torrents.
func (w *World) QueryTorrents(p query.Params) ([]query.Item, int) {
	w.mu.RLock()
	items := query.Serialize(w.torrents, func(t *models.Torrent) query.Item {
		return t.ToJSON(false)
	})
	w.mu.RUnlock()

	return query.Run(items, p)
}

// RandomTorrents devolve uma amostra aleatória do pool.
func (w *World) RandomTorrents() []query.Item {
	w.mu.RLock()
	defer w.mu.RUnlock()

	picked := w.sample(len(w.torrents))
	out := make([]query.Item, 0, len(picked))
	for _, i := range picked {
		out = append(out, w.torrents[i].ToJSON(false))
	}
	return out
}

// Torrent devolve o torrent com manifesto de arquivos. O status só aparece
// quando o torrent pertence ao canal próprio.
func (w *World) Torrent(ih models.HashID) (query.Item, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	t, ok := w.torrentIndex[ih]
	if !ok {
		return nil, ErrTorrentNotFound
	}
	return t.DetailJSON(w.inMyChannelLocked(t)), nil
}

func (w *World) inMyChannelLocked(t *models.Torrent) bool {
	if w.myChannel == NoChannel {
		return false
	}
	for _, mine := range w.channels[w.myChannel].Torrents {
		if mine == t {
			return true
		}
	}
	return false
}

// TorrentMetainfo devolve o arquivo .torrent e o nome do torrent.
func (w *World) TorrentMetainfo(ih models.HashID) ([]byte, string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	t, ok := w.torrentIndex[ih]
	if !ok {
		return nil, "", ErrTorrentNotFound
	}
	data, err := t.Metainfo()
	if err != nil {
		return nil, "", err
	}
	return data, t.Name, nil
}

// --- Downloads ---

func (w *World) Downloads() []query.Item {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return query.Serialize(w.downloads, (*models.Download).ToJSON)
}

// Download devolve o primeiro download do torrent informado.
func (w *World) Download(ih models.HashID) (query.Item, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, d := range w.downloads {
		if d.Torrent.Infohash == ih {
			return d.ToJSON(), nil
		}
	}
	return nil, ErrDownloadNotFound
}

// StartDownload inicia um download de um torrent do pool.
func (w *World) StartDownload(ih models.HashID) (query.Item, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	t, ok := w.torrentIndex[ih]
	if !ok {
		return nil, ErrTorrentNotFound
	}

	w.rngMu.Lock()
	d := models.NewDownload(w.rng, t)
	w.rngMu.Unlock()

	w.downloads = append(w.downloads, d)
	return d.ToJSON(), nil
}

// --- Ledger, mercado, túneis, DHT ---

// LedgerBlocks serializa a cadeia completa, do gênese ao último bloco.
func (w *World) LedgerBlocks() []query.Item {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return query.Serialize(w.ledger, (*models.LedgerBlock).ToJSON)
}

// Predecessor resolve o bloco anterior ao da posição i (lookup pelo índice na cadeia).
func (w *World) Predecessor(i int) (*models.LedgerBlock, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if i < 0 || i >= len(w.ledger) {
		return nil, false
	}
	prev := w.ledger[i].PreviousIndex
	if prev == models.GenesisIndex || prev < 0 || prev >= len(w.ledger) {
		return nil, false
	}
	return w.ledger[prev], true
}

// Ledger devolve uma cópia da fatia de blocos.
func (w *World) Ledger() []*models.LedgerBlock {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*models.LedgerBlock, len(w.ledger))
	copy(out, w.ledger)
	return out
}

func (w *World) OrderBook() map[string][]query.Item {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return map[string][]query.Item{
		"asks": query.Serialize(w.orderBook.Asks, (*models.Tick).ToJSON),
		"bids": query.Serialize(w.orderBook.Bids, (*models.Tick).ToJSON),
	}
}

func (w *World) Orders() []query.Item {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return query.Serialize(w.orders, (*models.Order).ToJSON)
}

func (w *World) Transactions() []query.Item {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return query.Serialize(w.transactions, (*models.Transaction).ToJSON)
}

func (w *World) Circuits() []query.Item {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return query.Serialize(w.circuits, (*models.Circuit).ToJSON)
}

func (w *World) Relays() []query.Item {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return query.Serialize(w.relays, (*models.Relay).ToJSON)
}

func (w *World) Exits() []query.Item {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return query.Serialize(w.exits, (*models.ExitSocket).ToJSON)
}

func (w *World) DHTStatistics() models.DHTStatistics {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.dht
}

func (w *World) Settings() map[string]interface{} {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.settings
}

// Counts resume o tamanho de cada coleção (usado em logs e métricas).
func (w *World) Counts() map[string]int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return map[string]int{
		"channels":     len(w.channels),
		"torrents":     len(w.torrents),
		"subscribed":   len(w.subscribed),
		"downloads":    len(w.downloads),
		"ledger":       len(w.ledger),
		"asks":         len(w.orderBook.Asks),
		"bids":         len(w.orderBook.Bids),
		"orders":       len(w.orders),
		"transactions": len(w.transactions),
		"circuits":     len(w.circuits),
		"relays":       len(w.relays),
		"exits":        len(w.exits),
	}
}

// sample devolve até sampleSize índices distintos em [0, n).
func (w *World) sample(n int) []int {
	w.rngMu.Lock()
	defer w.rngMu.Unlock()
	return sampleIndexes(w.rng, n, w.sampleSize)
}
