package handler

import (
	"net/http"

	"github.com/prapti31kour/CineCart/internal/config"
	"github.com/prapti31kour/CineCart/internal/middleware"
	"github.com/prapti31kour/CineCart/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	VcdID    string  `json:"vcdID"`
	Quantity float64 `json:"quantity"`
}

type UpdateCartRequest struct {
	ItemID   string  `json:"itemId"`
	Quantity float64 `json:"quantity"`
}

type RemoveCartRequest struct {
	VcdID string `json:"vcdID"`
}

// /cart配下を登録。全ルート要トークン。
func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/cart")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/add", h.add)
	g.GET("", h.get)
	g.PUT("/update", h.update)
	g.DELETE("/remove", h.remove)
	g.DELETE("/empty", h.empty)
	g.GET("/count", h.count)
}

func (h *CartHandler) add(c echo.Context) error {
	email, ok := getEmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	cart, err := h.uc.AddToCart(c.Request().Context(), email, usecase.AddCartInput{
		VcdID:    req.VcdID,
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Cart updated",
		"cart":    cart,
	})
}

func (h *CartHandler) get(c echo.Context) error {
	email, ok := getEmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	cart, err := h.uc.GetCart(c.Request().Context(), email)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) update(c echo.Context) error {
	email, ok := getEmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req UpdateCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	cart, err := h.uc.UpdateQuantity(c.Request().Context(), email, usecase.UpdateCartInput{
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"cart":    cart,
	})
}

func (h *CartHandler) remove(c echo.Context) error {
	email, ok := getEmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req RemoveCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	cart, err := h.uc.RemoveItem(c.Request().Context(), email, req.VcdID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Item removed if existed",
		"cart":    cart,
	})
}

func (h *CartHandler) empty(c echo.Context) error {
	email, ok := getEmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	cart, err := h.uc.ClearCart(c.Request().Context(), email)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Cart emptied",
		"cart":    cart,
	})
}

func (h *CartHandler) count(c echo.Context) error {
	email, ok := getEmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Count(c.Request().Context(), email)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// AuthJWTがcontextに入れたemailを取り出す
func getEmailFromContext(c echo.Context) (string, bool) {
	email, ok := c.Get(middleware.CtxUserEmailKey).(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}
