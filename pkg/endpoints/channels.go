package endpoints

import (
	"net/http"
	"strconv"

	"github.com/raywall/tribler-emulator/pkg/metrics"
	"github.com/raywall/tribler-emulator/pkg/models"
	"github.com/raywall/tribler-emulator/pkg/query"
	"github.com/raywall/tribler-emulator/pkg/router"
)

func pageBody(key string, page []query.Item, total int, p listParams) map[string]interface{} {
	return map[string]interface{}{
		key:        page,
		"first":    p.First,
		"last":     p.Last,
		"sort_by":  p.SortBy,
		"sort_asc": p.SortAsc,
		"total":    total,
	}
}

// GET /channels
func (a *API) listChannels(w http.ResponseWriter, r *http.Request) error {
	p, err := parseListParams(r.URL.Query())
	if err != nil {
		return err
	}
	page, total := a.world.QueryChannels(p.Params, p.Subscribed)
	return ok(w, pageBody("channels", page, total, p))
}

// GET /channels/popular
func (a *API) popularChannels(w http.ResponseWriter, r *http.Request) error {
	return ok(w, map[string]interface{}{"channels": a.world.PopularChannels()})
}

// GET /mychannel
func (a *API) myChannel(w http.ResponseWriter, r *http.Request) error {
	channel, err := a.world.MyChannel()
	if err != nil {
		return asRouterError(err)
	}
	return ok(w, map[string]interface{}{"mychannel": channel})
}

// GET /channels/{public_key}
func (a *API) getChannel(pk models.HashID) router.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		channel, err := a.world.Channel(pk)
		if err != nil {
			return asRouterError(err)
		}
		return ok(w, map[string]interface{}{"channel": channel})
	}
}

// POST /channels/{public_key} com subscribe=0|1.
func (a *API) subscribe(pk models.HashID) router.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		values, err := formValues(r)
		if err != nil {
			return err
		}
		form := subscribeForm{Subscribe: values.Get("subscribe")}
		if err := a.validate.Struct(form); err != nil {
			return validationError(err, "subscribe")
		}
		flag, err := strconv.Atoi(form.Subscribe)
		if err != nil {
			return router.BadRequest("subscribe parameter must be 0 or 1")
		}

		if err := a.world.Subscribe(pk, flag != 0); err != nil {
			return asRouterError(err)
		}

		action := "action:unsubscribe"
		if flag != 0 {
			action = "action:subscribe"
		}
		a.count(metrics.Subscriptions, action)

		return ok(w, map[string]interface{}{"success": true})
	}
}

// GET /channels/{public_key}/torrents
func (a *API) channelTorrents(pk models.HashID) router.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		values := r.URL.Query()
		if err := hexParam(values, "channel"); err != nil {
			return err
		}
		p, err := parseListParams(values)
		if err != nil {
			return err
		}
		page, total, err := a.world.ChannelTorrents(pk, p.Params)
		if err != nil {
			return asRouterError(err)
		}
		return ok(w, pageBody("torrents", page, total, p))
	}
}
