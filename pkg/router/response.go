package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// SendJSON escreve body como JSON com o status informado.
func SendJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.Error().Err(err).Msg("Erro ao encode response")
		}
	}
}

// WriteError renderiza err. Requisições de escrita recebem também "success": false,
// como o cliente real faz nos endpoints de mutação.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)

	var e *Error
	msg := "internal server error"
	if errors.As(err, &e) {
		msg = e.Message
		if len(e.Allow) > 0 {
			w.Header().Set("Allow", strings.Join(e.Allow, ", "))
		}
	} else {
		log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Erro inesperado no handler")
	}

	body := map[string]interface{}{"error": msg}
	if isMutation(r.Method) {
		body["success"] = false
	}
	SendJSON(w, status, body)
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
