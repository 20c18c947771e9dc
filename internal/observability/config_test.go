package observability

import (
	"testing"

	"github.com/smallbiznis/dashboard/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig(config.Config{
		AppName:      "dashboard",
		AppVersion:   "0.1.0",
		Environment:  "production",
		OTLPEndpoint: "collector:4317",
	})

	assert.Equal(t, "dashboard", cfg.ServiceName)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "0.1.0", cfg.Version)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.OtelEnabled)
	assert.Equal(t, "collector:4317", cfg.OtelExporterEndpoint)
	assert.Equal(t, "grpc", cfg.OtelExporterProtocol)
	assert.Equal(t, 0.1, cfg.OtelSamplingRatio)
	assert.False(t, cfg.Debug())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", " DEBUG ")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", "HTTP")
	t.Setenv("OTEL_SAMPLING_RATIO", "1")

	cfg := LoadConfig(config.Config{Environment: "production"})

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.OtelEnabled)
	assert.Equal(t, "http", cfg.OtelExporterProtocol)
	assert.Equal(t, 1.0, cfg.OtelSamplingRatio)
	assert.True(t, cfg.Debug())
}

func TestConfigDerivesComponentSettings(t *testing.T) {
	cfg := Config{
		ServiceName:          "dashboard",
		Environment:          "local",
		LogLevel:             "info",
		OtelEnabled:          true,
		OtelExporterEndpoint: "localhost:4317",
		OtelExporterProtocol: "grpc",
		OtelSamplingRatio:    0.5,
	}

	logCfg := cfg.Logger()
	assert.True(t, logCfg.Debug)
	assert.True(t, logCfg.IncludeStackOnError)

	traceCfg := cfg.Tracing()
	assert.True(t, traceCfg.Enabled)
	assert.Equal(t, 0.5, traceCfg.SamplingRatio)

	metricCfg := cfg.Metrics()
	assert.Equal(t, "localhost:4317", metricCfg.ExporterEndpoint)
	assert.Equal(t, "dashboard", metricCfg.ServiceName)
}
