package observability

import (
	"fmt"
	"sync"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/raywall/tribler-emulator/pkg/config"
	"github.com/raywall/tribler-emulator/pkg/metrics"
)

// NoopProvider é um placeholder para quando métricas estão desabilitadas.
type NoopProvider struct{}

func (n *NoopProvider) Count(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Gauge(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Histogram(name string, value float64, tags []string) error { return nil }

// DatadogProvider adapta a lib oficial do Datadog para nossa interface.
type DatadogProvider struct {
	client *statsd.Client
}

func (d *DatadogProvider) Count(name string, value float64, tags []string) error {
	return d.client.Count(name, int64(value), tags, 1)
}

func (d *DatadogProvider) Gauge(name string, value float64, tags []string) error {
	return d.client.Gauge(name, value, tags, 1)
}

func (d *DatadogProvider) Histogram(name string, value float64, tags []string) error {
	return d.client.Histogram(name, value, tags, 1)
}

// Close descarrega o buffer do statsd.
func (d *DatadogProvider) Close() error {
	return d.client.Close()
}

// SetupMetrics inicializa o provedor correto baseado no YAML.
func SetupMetrics(cfg config.MetricsConf) (metrics.Provider, error) {
	if !cfg.Datadog.Enabled {
		return &NoopProvider{}, nil
	}

	namespace := cfg.Datadog.Namespace
	if namespace == "" {
		namespace = "tribler_emulator."
	}

	client, err := statsd.New(cfg.Datadog.Addr, statsd.WithNamespace(namespace))
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no datadog statsd: %w", err)
	}

	return &DatadogProvider{client: client}, nil
}

// MemoryProvider acumula as métricas em memória. Usado em testes.
type MemoryProvider struct {
	mu     sync.Mutex
	Counts map[string]float64
	Gauges map[string]float64
	Hists  map[string][]float64
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		Counts: make(map[string]float64),
		Gauges: make(map[string]float64),
		Hists:  make(map[string][]float64),
	}
}

func (m *MemoryProvider) Count(name string, value float64, tags []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Counts[name] += value
	return nil
}

func (m *MemoryProvider) Gauge(name string, value float64, tags []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gauges[name] = value
	return nil
}

func (m *MemoryProvider) Histogram(name string, value float64, tags []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Hists[name] = append(m.Hists[name], value)
	return nil
}

// CountOf devolve o contador acumulado de forma segura.
func (m *MemoryProvider) CountOf(name string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Counts[name]
}
