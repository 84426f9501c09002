package config

import "time"

// EmulatorConfig representa a estrutura raiz do arquivo YAML do emulador.
type EmulatorConfig struct {
	Version string         `yaml:"version" validate:"required"`
	Service ServiceDetails `yaml:"service" validate:"required"`
	Dataset GeneratorConf  `yaml:"dataset"`
	GraphQL GraphQLConf    `yaml:"graphql"`
	Stubs   []StubRoute    `yaml:"stubs" validate:"dive"`
}

// ServiceDetails contém as configurações de runtime do servidor HTTP.
type ServiceDetails struct {
	Name            string      `yaml:"name" validate:"required,hostname_rfc1123"`
	Port            int         `yaml:"port" env:"EMULATOR_PORT" validate:"required,gte=1,lte=65535"`
	ReadTimeout     string      `yaml:"read_timeout"`
	ShutdownTimeout string      `yaml:"shutdown_timeout"`
	Logging         LoggingConf `yaml:"logging"`
	Metrics         MetricsConf `yaml:"metrics"`
}

type LoggingConf struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level" env:"EMULATOR_LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
	Format  string `yaml:"format" validate:"omitempty,oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
}

type DatadogConf struct {
	Enabled   bool   `yaml:"enabled" env:"DD_ENABLED"`
	Addr      string `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string `yaml:"namespace"`
}

// Range é um intervalo inclusivo [Min, Max] usado para sortear tamanhos de coleções.
type Range struct {
	Min int `yaml:"min" validate:"gte=0"`
	Max int `yaml:"max" validate:"gtefield=Min"`
}

// GeneratorConf controla o tamanho e a forma do dataset sintético.
type GeneratorConf struct {
	// Seed zero usa o relógio; qualquer outro valor torna a geração reprodutível.
	Seed            uint64 `yaml:"seed" env:"EMULATOR_SEED"`
	Strict          bool   `yaml:"strict" env:"EMULATOR_STRICT"`
	CreateMyChannel bool   `yaml:"create_my_channel"`
	Torrents        Range  `yaml:"torrents"`
	Channels        Range  `yaml:"channels"`
	ChannelTorrents Range  `yaml:"channel_torrents"`
	LedgerBlocks    int    `yaml:"ledger_blocks" validate:"gte=0"`
	SampleSize      int    `yaml:"sample_size" validate:"gte=1"`
}

type GraphQLConf struct {
	Enabled bool   `yaml:"enabled"`
	Route   string `yaml:"route" validate:"omitempty,startswith=/"`
}

// StubRoute é uma resposta estática para endpoints que o emulador não modela.
type StubRoute struct {
	Path     string   `yaml:"path" validate:"required,startswith=/"`
	Method   string   `yaml:"method" validate:"required,oneof=GET POST PUT PATCH DELETE"`
	Response Response `yaml:"response"`
}

// Response para status e body
type Response struct {
	Status int         `yaml:"status" json:"status" validate:"omitempty,gte=100,lt=600"`
	Body   interface{} `yaml:"body" json:"body,omitempty"`
}

// Default devolve a configuração usada quando nenhum arquivo é encontrado.
func Default() *EmulatorConfig {
	return &EmulatorConfig{
		Version: "1.0",
		Service: ServiceDetails{
			Name:            "tribler-emulator",
			Port:            8085,
			ReadTimeout:     "5s",
			ShutdownTimeout: "10s",
			Logging:         LoggingConf{Enabled: true, Level: "info", Format: "json"},
		},
		Dataset: GeneratorConf{
			CreateMyChannel: true,
			Torrents:        Range{Min: 500, Max: 1500},
			Channels:        Range{Min: 100, Max: 200},
			ChannelTorrents: Range{Min: 0, Max: 50},
			LedgerBlocks:    100,
			SampleSize:      20,
		},
		GraphQL: GraphQLConf{Enabled: true, Route: "/graphql"},
	}
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func (s ServiceDetails) GetReadTimeout() time.Duration {
	return parseDuration(s.ReadTimeout, 5*time.Second)
}

func (s ServiceDetails) GetShutdownTimeout() time.Duration {
	return parseDuration(s.ShutdownTimeout, 10*time.Second)
}
