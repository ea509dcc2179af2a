package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
)

var (
	metricsOnce sync.Once
	prom        *fiberprometheus.FiberPrometheus
)

// InitMetrics registers the HTTP metrics collector once per process and
// exposes it at /metrics on app.
func InitMetrics(app *fiber.App, serviceName string) {
	metricsOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	prom.RegisterAt(app, "/metrics")
}

// MetricsMiddleware records request counts and latencies. InitMetrics must run first.
func MetricsMiddleware() fiber.Handler {
	if prom == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return prom.Middleware
}
