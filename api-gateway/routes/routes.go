package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tair/smart-inventory/api-gateway/config"
	"github.com/tair/smart-inventory/api-gateway/health"
	"github.com/tair/smart-inventory/api-gateway/middleware"
	"github.com/tair/smart-inventory/api-gateway/proxy"
)

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, redisClient *redis.Client) {
	reverseProxy := proxy.NewReverseProxy(cfg)
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no upstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (checks upstream instances)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllInstances(ctx)
		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}
		return c.Status(statusCode).JSON(healthStatus)
	})

	// Gateway overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Smart Inventory API Gateway",
			"version":   "1.0.0",
			"upstream":  cfg.Service.Name,
			"instances": cfg.Service.Instances,
		})
	})

	proxyHandler := func(c *fiber.Ctx) error {
		return reverseProxy.ProxyRequest(c)
	}

	// Dashboard queries are read-heavy and derived; cache them briefly.
	dashboard := app.Group("/api/dashboard", middleware.CacheMiddleware(redisClient, middleware.DefaultCacheConfig()))
	dashboard.All("/*", proxyHandler)

	// Everything else under /api goes straight through.
	app.All("/api/*", proxyHandler)
	app.All("/api", proxyHandler)
}
