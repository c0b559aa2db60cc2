package config

import (
	"os"
	"strings"
	"time"
)

// ServiceConfig holds configuration for the upstream inventory service
type ServiceConfig struct {
	Name        string
	Instances   []string
	Timeout     time.Duration
	HealthCheck string
}

// GatewayConfig holds the main gateway configuration
type GatewayConfig struct {
	Port    string
	Service ServiceConfig
}

// LoadConfig loads the gateway configuration from the environment.
// INVENTORY_INSTANCES is a comma-separated list of base URLs; a single
// local instance is the default.
func LoadConfig() *GatewayConfig {
	return &GatewayConfig{
		Port: getEnv("GATEWAY_PORT", "8000"),
		Service: ServiceConfig{
			Name:        "smart-inventory",
			Instances:   splitList(getEnv("INVENTORY_INSTANCES", "http://localhost:8080")),
			Timeout:     30 * time.Second,
			HealthCheck: "/health",
		},
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	instances := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			instances = append(instances, trimmed)
		}
	}
	return instances
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
