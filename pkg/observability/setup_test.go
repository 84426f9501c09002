package observability

import (
	"testing"

	"github.com/raywall/tribler-emulator/pkg/config"
	"github.com/raywall/tribler-emulator/pkg/metrics"
)

func TestSetupMetrics(t *testing.T) {
	t.Run("Disabled returns Noop", func(t *testing.T) {
		cfg := config.MetricsConf{
			Datadog: config.DatadogConf{Enabled: false},
		}

		provider, err := SetupMetrics(cfg)
		if err != nil {
			t.Fatalf("Erro setup: %v", err)
		}

		if _, ok := provider.(*NoopProvider); !ok {
			t.Errorf("Esperado NoopProvider, recebido %T", provider)
		}
	})

	t.Run("Enabled returns Datadog", func(t *testing.T) {
		cfg := config.MetricsConf{
			Datadog: config.DatadogConf{
				Enabled: true,
				Addr:    "localhost:8125",
			},
		}

		provider, err := SetupMetrics(cfg)
		if err != nil {
			// statsd.New usa UDP, então a criação passa mesmo sem agente
			t.Fatalf("Erro setup: %v", err)
		}

		dd, ok := provider.(*DatadogProvider)
		if !ok {
			t.Fatalf("Esperado DatadogProvider, recebido %T", provider)
		}
		defer dd.Close()
	})
}

func TestMemoryProvider(t *testing.T) {
	p := NewMemoryProvider()
	_ = p.Count(metrics.RequestCount, 1, nil)
	_ = p.Count(metrics.RequestCount, 2, nil)
	_ = p.Gauge(metrics.DatasetSize, 10, nil)
	_ = p.Histogram(metrics.RequestLatency, 3, nil)

	if got := p.CountOf(metrics.RequestCount); got != 3 {
		t.Errorf("Esperado 3, recebido %v", got)
	}
	if p.Gauges[metrics.DatasetSize] != 10 {
		t.Errorf("Gauge incorreto: %v", p.Gauges[metrics.DatasetSize])
	}
	if len(p.Hists[metrics.RequestLatency]) != 1 {
		t.Errorf("Histograma incorreto: %v", p.Hists[metrics.RequestLatency])
	}
}
