package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_Validate(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name    string
		mutate  func(cfg *EmulatorConfig)
		wantErr bool
	}{
		{
			name:    "Valid Default Config",
			mutate:  func(cfg *EmulatorConfig) {},
			wantErr: false,
		},
		{
			name:    "Missing Version",
			mutate:  func(cfg *EmulatorConfig) { cfg.Version = "" },
			wantErr: true,
		},
		{
			name:    "Port Out Of Range",
			mutate:  func(cfg *EmulatorConfig) { cfg.Service.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "Invalid Log Level",
			mutate:  func(cfg *EmulatorConfig) { cfg.Service.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "Range Min Greater Than Max",
			mutate:  func(cfg *EmulatorConfig) { cfg.Dataset.Torrents = Range{Min: 10, Max: 5} },
			wantErr: true,
		},
		{
			name: "My Channel Without Channels",
			mutate: func(cfg *EmulatorConfig) {
				cfg.Dataset.Channels = Range{Min: 0, Max: 0}
			},
			wantErr: true,
		},
		{
			name: "No Channels And No My Channel",
			mutate: func(cfg *EmulatorConfig) {
				cfg.Dataset.CreateMyChannel = false
				cfg.Dataset.Channels = Range{Min: 0, Max: 0}
			},
			wantErr: false,
		},
		{
			name:    "Datadog Enabled Without Addr",
			mutate:  func(cfg *EmulatorConfig) { cfg.Service.Metrics.Datadog.Enabled = true },
			wantErr: true,
		},
		{
			name: "Duplicated Stub",
			mutate: func(cfg *EmulatorConfig) {
				stub := StubRoute{Path: "/statistics/tribler", Method: "GET", Response: Response{Status: 200}}
				cfg.Stubs = []StubRoute{stub, stub}
			},
			wantErr: true,
		},
		{
			name: "Stub Colliding With GraphQL",
			mutate: func(cfg *EmulatorConfig) {
				cfg.Stubs = []StubRoute{{Path: "/graphql", Method: "POST"}}
			},
			wantErr: true,
		},
		{
			name:    "GraphQL Enabled Without Route",
			mutate:  func(cfg *EmulatorConfig) { cfg.GraphQL.Route = "" },
			wantErr: true,
		},
		{
			name:    "Invalid Stub Method",
			mutate:  func(cfg *EmulatorConfig) { cfg.Stubs = []StubRoute{{Path: "/x", Method: "TRACE"}} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := validator.Validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
