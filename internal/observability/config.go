package observability

import (
	"strings"

	"github.com/smallbiznis/dashboard/internal/config"
	"github.com/spf13/viper"
)

// Config holds observability settings. They are read from the environment
// on top of the application config.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64
}

func LoadConfig(cfg config.Config) Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("deployment_env", cfg.Environment)
	v.SetDefault("service_version", cfg.AppVersion)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("otel_enabled", false)
	v.SetDefault("otel_exporter_otlp_endpoint", cfg.OTLPEndpoint)
	v.SetDefault("otel_exporter_otlp_protocol", "grpc")
	v.SetDefault("otel_sampling_ratio", 0.1)

	serviceName := strings.TrimSpace(cfg.AppName)
	if serviceName == "" {
		serviceName = "dashboard"
	}

	protocol := v.GetString("otel_exporter_otlp_protocol")
	if traces := strings.TrimSpace(v.GetString("otel_exporter_otlp_traces_protocol")); traces != "" {
		protocol = traces
	}

	return Config{
		ServiceName:          serviceName,
		Environment:          strings.TrimSpace(v.GetString("deployment_env")),
		Version:              strings.TrimSpace(v.GetString("service_version")),
		LogLevel:             normalize(v.GetString("log_level")),
		LogFormat:            normalize(v.GetString("log_format")),
		OtelEnabled:          v.GetBool("otel_enabled"),
		OtelExporterEndpoint: strings.TrimSpace(v.GetString("otel_exporter_otlp_endpoint")),
		OtelExporterProtocol: normalize(protocol),
		OtelSamplingRatio:    v.GetFloat64("otel_sampling_ratio"),
	}
}

// Debug enables verbose logging and stack traces.
func (c Config) Debug() bool {
	if c.LogLevel == "debug" {
		return true
	}
	switch normalize(c.Environment) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
