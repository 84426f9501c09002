package endpoints

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/raywall/tribler-emulator/pkg/metrics"
	"github.com/raywall/tribler-emulator/pkg/models"
	"github.com/raywall/tribler-emulator/pkg/router"
	"github.com/rs/zerolog/log"
)

// GET /torrents
func (a *API) listTorrents(w http.ResponseWriter, r *http.Request) error {
	p, err := parseListParams(r.URL.Query())
	if err != nil {
		return err
	}
	page, total := a.world.QueryTorrents(p.Params)
	return ok(w, pageBody("torrents", page, total, p))
}

// GET /torrents/random
func (a *API) randomTorrents(w http.ResponseWriter, r *http.Request) error {
	return ok(w, map[string]interface{}{"torrents": a.world.RandomTorrents()})
}

// GET /torrents/{infohash}
func (a *API) getTorrent(ih models.HashID) router.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		torrent, err := a.world.Torrent(ih)
		if err != nil {
			return asRouterError(err)
		}
		return ok(w, map[string]interface{}{"torrent": torrent})
	}
}

// GET /torrents/{infohash}/torrent devolve o .torrent bencodificado.
func (a *API) torrentFile(ih models.HashID) router.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		data, name, err := a.world.TorrentMetainfo(ih)
		if err != nil {
			return asRouterError(err)
		}

		w.Header().Set("Content-Type", "application/x-bittorrent")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".torrent"))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Msg("Falha ao escrever metainfo")
		}
		return nil
	}
}

// GET /downloads
func (a *API) listDownloads(w http.ResponseWriter, r *http.Request) error {
	return ok(w, map[string]interface{}{"downloads": a.world.Downloads()})
}

// GET /downloads/{infohash}
func (a *API) getDownload(ih models.HashID) router.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		download, err := a.world.Download(ih)
		if err != nil {
			return asRouterError(err)
		}
		return ok(w, map[string]interface{}{"download": download})
	}
}

// PUT /downloads com infohash=<40 hex>. Sempre acrescenta um novo download.
func (a *API) startDownload(w http.ResponseWriter, r *http.Request) error {
	values, err := formValues(r)
	if err != nil {
		return err
	}
	form := downloadForm{Infohash: values.Get("infohash")}
	if err := a.validate.Struct(form); err != nil {
		return validationError(err, "infohash")
	}
	ih, err := models.ParseHashID(form.Infohash)
	if err != nil {
		return router.BadRequest("infohash parameter is invalid")
	}

	if _, err := a.world.StartDownload(ih); err != nil {
		return asRouterError(err)
	}
	a.count(metrics.DownloadsStart)

	return ok(w, map[string]interface{}{"started": true, "infohash": ih.String()})
}
