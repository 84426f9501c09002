package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/raywall/tribler-emulator/pkg/config"
	"github.com/raywall/tribler-emulator/pkg/graphql"
	"github.com/raywall/tribler-emulator/pkg/metrics"
	"github.com/raywall/tribler-emulator/pkg/router"
	"github.com/rs/zerolog/log"
)

// NewRouter monta o roteador externo. GraphQL e stubs configurados são pendurados
// como filhos literais da árvore da API, que responde como catch-all e assim aplica
// o mesmo tratamento de 404/405 a todas as rotas.
func NewRouter(cfg *config.EmulatorConfig, api *router.Node, gql *graphql.GraphQLEngine, m metrics.Provider) *mux.Router {
	r := mux.NewRouter()
	r.Use(ObservabilityMiddleware(m))

	if cfg.GraphQL.Enabled && gql != nil {
		log.Info().Msgf("Registrando GraphQL em %s", cfg.GraphQL.Route)
		mountPath(api, cfg.GraphQL.Route).Post(createGraphQLHandler(gql))
	}

	for _, stub := range cfg.Stubs {
		log.Info().Str("method", stub.Method).Str("path", stub.Path).Msg("Registrando stub")
		mountPath(api, stub.Path).Handle(stub.Method, stubHandler(stub.Response))
	}

	r.PathPrefix("/").Handler(api)
	return r
}

// mountPath percorre (criando) os segmentos literais de path a partir de root.
func mountPath(root *router.Node, path string) *router.Node {
	node := root
	for _, segment := range router.Segments(path) {
		node = node.Static(segment)
	}
	return node
}

func createGraphQLHandler(gql *graphql.GraphQLEngine) router.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		var p struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			return router.BadRequest("Invalid JSON Body")
		}

		result := gql.Execute(r.Context(), p.Query, p.Variables)
		router.SendJSON(w, http.StatusOK, result)
		return nil
	}
}

// StartHTTPServer escuta na porta configurada até ctx ser cancelado e então
// faz o shutdown gracioso, respeitando o shutdown_timeout.
func StartHTTPServer(ctx context.Context, cfg *config.EmulatorConfig, handler http.Handler) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Service.Port))
	if err != nil {
		return fmt.Errorf("falha ao escutar na porta %d: %w", cfg.Service.Port, err)
	}
	return Serve(ctx, cfg.Service, ln, handler)
}

// Serve atende em ln. Separado de StartHTTPServer para permitir listeners efêmeros.
func Serve(ctx context.Context, svc config.ServiceDetails, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:     handler,
		ReadTimeout: svc.GetReadTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("Servidor HTTP ouvindo em %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Encerrando servidor HTTP")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), svc.GetShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("falha no shutdown: %w", err)
	}
	return nil
}
