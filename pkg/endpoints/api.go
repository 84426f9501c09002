// Package endpoints monta a árvore de rotas da API falsa e os seus handlers.
//
// Os handlers só traduzem HTTP: fazem o parse dos parâmetros, validam antes de
// qualquer mutação e delegam ao dataset.World e ao motor de consulta.
package endpoints

import (
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/raywall/tribler-emulator/pkg/dataset"
	"github.com/raywall/tribler-emulator/pkg/metrics"
	"github.com/raywall/tribler-emulator/pkg/models"
	"github.com/raywall/tribler-emulator/pkg/router"
)

// API agrupa as dependências dos handlers.
type API struct {
	world    *dataset.World
	metrics  metrics.Provider
	validate *validator.Validate
}

func New(world *dataset.World, m metrics.Provider) *API {
	return &API{
		world:    world,
		metrics:  m,
		validate: validator.New(),
	}
}

// Tree constrói a árvore completa de rotas.
func (a *API) Tree() *router.Node {
	root := router.NewNode()

	channels := root.Static("channels").Get(a.listChannels)
	channels.Static("popular").Get(a.popularChannels)
	channels.Dynamic(a.channelNode)

	root.Static("mychannel").Get(a.myChannel)

	torrents := root.Static("torrents").Get(a.listTorrents)
	torrents.Static("random").Get(a.randomTorrents)
	torrents.Dynamic(a.torrentNode)

	downloads := root.Static("downloads").Get(a.listDownloads).Put(a.startDownload)
	downloads.Dynamic(a.downloadNode)

	ipv8 := root.Static("ipv8")
	ipv8.Static("trustchain").Static("users").Dynamic(a.trustchainUserNode)
	tunnel := ipv8.Static("tunnel")
	tunnel.Static("circuits").Get(a.circuits)
	tunnel.Static("relays").Get(a.relays)
	tunnel.Static("exits").Get(a.exits)
	ipv8.Static("dht").Static("statistics").Get(a.dhtStatistics)

	market := root.Static("market")
	market.Static("orderbook").Get(a.orderBook)
	market.Static("orders").Get(a.orders)
	market.Static("transactions").Get(a.transactions)

	root.Static("settings").Get(a.settings)

	return root
}

// parseHashSegment decodifica um segmento dinâmico de 40 caracteres hex.
func parseHashSegment(segment, what string) (models.HashID, error) {
	id, err := models.ParseHashID(segment)
	if err != nil {
		return id, router.BadRequest("invalid %s %q: expected %d hex characters", what, segment, models.HashIDLength*2)
	}
	return id, nil
}

// channelNode resolve /channels/{public_key}.
func (a *API) channelNode(segment string) (*router.Node, error) {
	pk, err := parseHashSegment(segment, "public key")
	if err != nil {
		return nil, err
	}
	node := router.NewNode().
		Get(a.getChannel(pk)).
		Post(a.subscribe(pk))
	node.Static("torrents").Get(a.channelTorrents(pk))
	return node, nil
}

// torrentNode resolve /torrents/{infohash}.
func (a *API) torrentNode(segment string) (*router.Node, error) {
	ih, err := parseHashSegment(segment, "infohash")
	if err != nil {
		return nil, err
	}
	node := router.NewNode().Get(a.getTorrent(ih))
	node.Static("torrent").Get(a.torrentFile(ih))
	return node, nil
}

// downloadNode resolve /downloads/{infohash}.
func (a *API) downloadNode(segment string) (*router.Node, error) {
	ih, err := parseHashSegment(segment, "infohash")
	if err != nil {
		return nil, err
	}
	return router.NewNode().Get(a.getDownload(ih)), nil
}

// trustchainUserNode resolve /ipv8/trustchain/users/{id}. O id aceita qualquer
// chave em hex; o ledger emulado é único.
func (a *API) trustchainUserNode(segment string) (*router.Node, error) {
	if _, err := hex.DecodeString(segment); err != nil {
		return nil, router.BadRequest("invalid user id %q", segment)
	}
	node := router.NewNode()
	node.Static("blocks").Get(a.blocks)
	return node, nil
}

// asRouterError mapeia os erros do dataset para a taxonomia do roteador.
func asRouterError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, dataset.ErrChannelNotFound),
		errors.Is(err, dataset.ErrTorrentNotFound),
		errors.Is(err, dataset.ErrDownloadNotFound),
		errors.Is(err, dataset.ErrNoMyChannel):
		return router.NotFound("%s", err.Error())
	}
	return err
}

func (a *API) count(name string, tags ...string) {
	if a.metrics == nil {
		return
	}
	_ = a.metrics.Count(name, 1, tags)
}

func ok(w http.ResponseWriter, body interface{}) error {
	router.SendJSON(w, http.StatusOK, body)
	return nil
}
