package config

import "strings"

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

// loadMetrics reads telemetry settings. The OTLP endpoint is host:port, so a scheme prefix is stripped.
func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, true),
		Port:         portEnvOrDefault(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint: otlpHost(envOrDefault(envOtelEndpoint, "")),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, true),
	}
}

func otlpHost(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, scheme := range []string{"http://", "https://"} {
		if strings.HasPrefix(raw, scheme) {
			raw = strings.TrimPrefix(raw, scheme)
			break
		}
	}
	return strings.TrimSuffix(raw, "/")
}
