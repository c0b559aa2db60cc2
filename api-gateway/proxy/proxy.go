package proxy

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tair/smart-inventory/api-gateway/config"
	"github.com/tair/smart-inventory/api-gateway/loadbalancer"
	"github.com/tair/smart-inventory/pkg/logger"
)

// ReverseProxy forwards requests to the upstream inventory service instances
type ReverseProxy struct {
	config *config.GatewayConfig
	client *http.Client
	lb     *loadbalancer.RoundRobin
}

// NewReverseProxy creates a new reverse proxy
func NewReverseProxy(cfg *config.GatewayConfig) *ReverseProxy {
	return &ReverseProxy{
		config: cfg,
		lb:     loadbalancer.NewRoundRobin(cfg.Service.Instances),
		client: &http.Client{
			Timeout: cfg.Service.Timeout,
		},
	}
}

// ProxyRequest forwards the request to the next upstream instance
func (p *ReverseProxy) ProxyRequest(c *fiber.Ctx) error {
	serverURL := p.lb.Next()
	if serverURL == "" {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "No available upstream instances",
		})
	}

	targetURL := serverURL + c.OriginalURL()

	logger.Logger.Debug().
		Str("target_url", targetURL).
		Str("path", c.Path()).
		Msg("Proxying request")

	req, err := http.NewRequestWithContext(
		c.UserContext(),
		c.Method(),
		targetURL,
		bytes.NewReader(c.Body()),
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create request",
		})
	}
	p.copyRequestHeaders(c, req)

	resp, err := p.client.Do(req)
	if err != nil {
		logger.Logger.Error().
			Err(err).
			Str("target_url", targetURL).
			Msg("Upstream request failed")

		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Failed to reach upstream service",
			"details": err.Error(),
		})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to read upstream response",
		})
	}

	for key, values := range resp.Header {
		for _, value := range values {
			c.Response().Header.Add(key, value)
		}
	}
	return c.Status(resp.StatusCode).Send(body)
}

func (p *ReverseProxy) copyRequestHeaders(c *fiber.Ctx, req *http.Request) {
	c.Request().Header.VisitAll(func(key, value []byte) {
		req.Header.Add(string(key), string(value))
	})
	req.Header.Set("X-Forwarded-For", c.IP())
}
