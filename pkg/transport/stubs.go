package transport

import (
	"fmt"
	"net/http"

	"github.com/raywall/tribler-emulator/pkg/config"
	"github.com/raywall/tribler-emulator/pkg/router"
)

// stubHandler responde sempre com o status e o body configurados.
func stubHandler(resp config.Response) router.HandlerFunc {
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	body := normalize(resp.Body)
	return func(w http.ResponseWriter, r *http.Request) error {
		router.SendJSON(w, status, body)
		return nil
	}
}

// normalize converte mapas com chave interface{} (herança do YAML) para chaves string,
// que é o que encoding/json aceita.
func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[toKey(k)] = normalize(item)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	default:
		return v
	}
}

func toKey(k interface{}) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", k)
}
