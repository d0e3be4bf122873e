package handler

import (
	"net/http"

	"github.com/prapti31kour/CineCart/internal/config"
	"github.com/prapti31kour/CineCart/internal/middleware"
	"github.com/prapti31kour/CineCart/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewOrderHandler(uc *usecase.CheckoutUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderItemRequest struct {
	VcdID    string  `json:"vcdID"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

type OrderCreateRequest struct {
	Email         string             `json:"email"` // 旧互換。トークンのemailが優先。
	Items         []OrderItemRequest `json:"items"`
	PaymentMethod string             `json:"paymentMethod"`
	Address       string             `json:"address"`
	ClearCart     *bool              `json:"clearCart"`
}

// /orders配下を登録。全ルート要トークン。
func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/create", h.create)
	g.GET("", h.list)
}

func (h *OrderHandler) create(c echo.Context) error {
	email, _ := getEmailFromContext(c)

	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	items := make([]usecase.CheckoutItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.CheckoutItemInput{
			VcdID:    it.VcdID,
			Title:    it.Title,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), email, usecase.PlaceOrderInput{
		Email:         req.Email,
		Items:         items,
		PaymentMethod: req.PaymentMethod,
		Address:       req.Address,
		ClearCart:     req.ClearCart,
	})
	if err != nil {
		return writeError(c, err)
	}

	resp := echo.Map{
		"message": "Order placed",
		"orderId": out.Order.OrderID,
		"order":   out.Order,
	}
	if out.Warning != "" {
		resp["warning"] = out.Warning
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *OrderHandler) list(c echo.Context) error {
	email, _ := getEmailFromContext(c)

	out, err := h.uc.ListOrders(c.Request().Context(), email, c.QueryParam("email"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
