// Package server exposes the operational HTTP surface of the bot:
// liveness and Prometheus metrics. The user-facing surface is the chat
// transport, not HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Ops struct {
	echo *echo.Echo
}

func NewOps() *Ops {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return &Ops{echo: e}
}

// Start blocks serving until Shutdown is called.
func (o *Ops) Start(addr string) error {
	if err := o.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (o *Ops) Shutdown(ctx context.Context) error {
	return o.echo.Shutdown(ctx)
}
