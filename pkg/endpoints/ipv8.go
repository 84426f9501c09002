package endpoints

import "net/http"

// GET /ipv8/trustchain/users/{id}/blocks devolve a cadeia completa.
func (a *API) blocks(w http.ResponseWriter, r *http.Request) error {
	return ok(w, map[string]interface{}{"blocks": a.world.LedgerBlocks()})
}

func (a *API) circuits(w http.ResponseWriter, r *http.Request) error {
	return ok(w, map[string]interface{}{"circuits": a.world.Circuits()})
}

func (a *API) relays(w http.ResponseWriter, r *http.Request) error {
	return ok(w, map[string]interface{}{"relays": a.world.Relays()})
}

func (a *API) exits(w http.ResponseWriter, r *http.Request) error {
	return ok(w, map[string]interface{}{"exits": a.world.Exits()})
}

func (a *API) dhtStatistics(w http.ResponseWriter, r *http.Request) error {
	return ok(w, map[string]interface{}{"statistics": a.world.DHTStatistics()})
}

// --- mercado e settings ---

func (a *API) orderBook(w http.ResponseWriter, r *http.Request) error {
	book := a.world.OrderBook()
	return ok(w, map[string]interface{}{"asks": book["asks"], "bids": book["bids"]})
}

func (a *API) orders(w http.ResponseWriter, r *http.Request) error {
	return ok(w, map[string]interface{}{"orders": a.world.Orders()})
}

func (a *API) transactions(w http.ResponseWriter, r *http.Request) error {
	return ok(w, map[string]interface{}{"transactions": a.world.Transactions()})
}

func (a *API) settings(w http.ResponseWriter, r *http.Request) error {
	return ok(w, a.world.Settings())
}
