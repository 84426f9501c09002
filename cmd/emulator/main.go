package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/raywall/tribler-emulator/pkg/config"
	"github.com/raywall/tribler-emulator/pkg/dataset"
	"github.com/raywall/tribler-emulator/pkg/endpoints"
	"github.com/raywall/tribler-emulator/pkg/graphql"
	"github.com/raywall/tribler-emulator/pkg/logger"
	"github.com/raywall/tribler-emulator/pkg/metrics"
	"github.com/raywall/tribler-emulator/pkg/observability"
	"github.com/raywall/tribler-emulator/pkg/transport"
	"github.com/rs/zerolog/log"
)

// Injetáveis para testes
var (
	configLoader  = config.Load
	serverStarter = transport.StartHTTPServer
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("FATAL")
	}
}

// run contém a lógica de orquestração
func run(ctx context.Context) error {
	// 1. Configuração
	cfg, err := configLoader(ctx)
	if err != nil {
		return err
	}

	// 2. Logger e métricas
	logger.Configure(cfg.Service.Logging, cfg.Service.Name)
	provider, err := observability.SetupMetrics(cfg.Service.Metrics)
	if err != nil {
		return err
	}
	if closer, ok := provider.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	// 3. Dataset
	cfg.Dataset.Seed = dataset.EffectiveSeed(cfg.Dataset.Seed)
	world, err := dataset.Generate(cfg.Dataset, dataset.NewRNG(cfg.Dataset.Seed))
	if err != nil {
		return fmt.Errorf("falha ao gerar o dataset: %w", err)
	}
	summary := log.Info().Uint64("seed", cfg.Dataset.Seed)
	for name, n := range world.Counts() {
		summary = summary.Int(name, n)
		_ = provider.Gauge(metrics.DatasetSize, float64(n), []string{"entity:" + name})
	}
	summary.Msg("Dataset gerado")

	// 4. Handlers
	var gql *graphql.GraphQLEngine
	if cfg.GraphQL.Enabled {
		if gql, err = graphql.NewGraphQLEngine(world); err != nil {
			return fmt.Errorf("falha ao construir schema graphql: %w", err)
		}
	}
	api := endpoints.New(world, provider).Tree()

	var handler http.Handler = transport.NewRouter(cfg, api, gql, provider)
	return serverStarter(ctx, cfg, handler)
}
