package server

import (
	"net/http"

	"github.com/prapti31kour/CineCart/internal/config"
	"github.com/prapti31kour/CineCart/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// New はechoを組み立てて全ルートを登録する。
func New(
	cfg config.Config,
	authH *handler.AuthHandler,
	cartH *handler.CartHandler,
	orderH *handler.OrderHandler,
	vcdH *handler.VcdHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	//CORS（フロントURLが設定されていればそこだけ許可）
	origins := []string{"*"}
	if cfg.FEURL != "" {
		origins = []string{cfg.FEURL}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
	}))

	RegisterRoutes(e, cfg, authH, cartH, orderH, vcdH)

	return e
}

// Start はサーバーを起動する。
func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
