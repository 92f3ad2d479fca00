// Package http assembles the echo server: REST API, WebSocket endpoint
// and middleware.
package http

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/prajwalun/agentbay/internal/service"
	v1 "github.com/prajwalun/agentbay/internal/transport/http/v1"
	"github.com/prajwalun/agentbay/internal/transport/ws"
)

// NewServer creates the echo server. When apiKey is set, /v1 routes
// require it in the X-API-Key header; the WebSocket checks it in hello.
func NewServer(svc *service.Service, wsServer *ws.Server, apiKey string, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	v1Handler := v1.NewHandler(svc)

	e.GET("/health", v1Handler.Health)
	if wsServer != nil {
		e.GET("/ws", wsServer.HandleWebSocket)
	}

	api := e.Group("/v1")
	if apiKey != "" {
		api.Use(middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
			KeyLookup: "header:X-API-Key",
			Validator: func(key string, c echo.Context) (bool, error) {
				return subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1, nil
			},
		}))
	}
	v1Handler.RegisterRoutes(api)

	return e
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				logger.Warn("Request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("Request", fields...)
			return nil
		},
	})
}
