package endpoints

import (
	"encoding/hex"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/raywall/tribler-emulator/pkg/query"
	"github.com/raywall/tribler-emulator/pkg/router"
)

// listParams são os parâmetros aceitos pelos endpoints de listagem.
type listParams struct {
	query.Params
	Subscribed bool
}

// parseListParams lê first, last, sort_by, sort_asc, filter e subscribed.
// Valores ausentes usam os defaults; valores que não fazem parse são BadRequest.
func parseListParams(values url.Values) (listParams, error) {
	p := listParams{Params: query.DefaultParams()}

	var err error
	if p.First, err = intParam(values, "first", p.First); err != nil {
		return p, err
	}
	if p.Last, err = intParam(values, "last", p.Last); err != nil {
		return p, err
	}
	if p.SortAsc, err = boolParam(values, "sort_asc", p.SortAsc); err != nil {
		return p, err
	}
	if p.Subscribed, err = boolParam(values, "subscribed", false); err != nil {
		return p, err
	}
	p.SortBy = values.Get("sort_by")
	p.Filter = values.Get("filter")
	return p, nil
}

func intParam(values url.Values, name string, fallback int) (int, error) {
	raw := values.Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, router.BadRequest("%s parameter must be an integer", name)
	}
	return v, nil
}

func boolParam(values url.Values, name string, fallback bool) (bool, error) {
	raw := values.Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, router.BadRequest("%s parameter must be 0 or 1", name)
	}
	return v, nil
}

// hexParam valida um parâmetro opcional em hexadecimal.
func hexParam(values url.Values, name string) error {
	raw := values.Get(name)
	if raw == "" {
		return nil
	}
	if _, err := hex.DecodeString(raw); err != nil {
		return router.BadRequest("%s parameter is not valid hex", name)
	}
	return nil
}

// subscribeForm é o corpo de POST /channels/{public_key}.
type subscribeForm struct {
	Subscribe string `validate:"required,numeric"`
}

// downloadForm é o corpo de PUT /downloads.
type downloadForm struct {
	Infohash string `validate:"required,len=40,hexadecimal"`
}

// formValues faz o parse do corpo (urlencoded) junto com a query string.
func formValues(r *http.Request) (url.Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, router.BadRequest("malformed request body")
	}
	return r.Form, nil
}

// validationError traduz o primeiro erro do validator em BadRequest.
func validationError(err error, param string) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if verrs[0].Tag() == "required" {
			return router.BadRequest("%s parameter missing", param)
		}
		return router.BadRequest("%s parameter is invalid (%s)", param, verrs[0].Tag())
	}
	return router.BadRequest("%s parameter is invalid", param)
}
