package server

import (
	appmw "app/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func Start(addr string, logger *zap.Logger, hs ...RouteRegistrar) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(appmw.RequestLogger(logger))

	RegisterRoutes(e, hs...)
	return e.Start(addr)
}
