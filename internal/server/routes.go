package server

import (
	"github.com/prapti31kour/CineCart/internal/config"
	"github.com/prapti31kour/CineCart/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	authH *handler.AuthHandler,
	cartH *handler.CartHandler,
	orderH *handler.OrderHandler,
	vcdH *handler.VcdHandler,
) {
	authH.RegisterRoutes(e)
	cartH.RegisterRoutes(e, cfg)
	orderH.RegisterRoutes(e, cfg)
	vcdH.RegisterRoutes(e, cfg)
}
