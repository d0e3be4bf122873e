package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prapti31kour/CineCart/internal/domain/model"
	repo "github.com/prapti31kour/CineCart/internal/repository"
)

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// CheckoutUsecase はチェックアウトの多段処理をまとめる。
// 在庫減算×N → 注文作成 → カートクリア をこの順で実行する。
// トランザクションでは包まない：途中で失敗しても先行した減算は戻さない
// （クライアントには失敗した作品を特定して返す）。
type CheckoutUsecase struct {
	userRepo  repo.UserRepository
	vcdRepo   repo.VcdRepository
	orderRepo repo.OrderRepository
	cartRepo  repo.CartRepository
	idGen     IDGenerator
	clock     Clock
}

// DI
func NewCheckoutUsecase(
	userRepo repo.UserRepository,
	vcdRepo repo.VcdRepository,
	orderRepo repo.OrderRepository,
	cartRepo repo.CartRepository,
	idGen IDGenerator,
	clock Clock,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		userRepo:  userRepo,
		vcdRepo:   vcdRepo,
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		idGen:     idGen,
		clock:     clock,
	}
}

// 注文アイテムの入力（価格・タイトルはクライアント申告のまま記録する）
type CheckoutItemInput struct {
	VcdID    string
	Title    string
	Price    float64
	Quantity int64
}

// POST /orders/create の入力DTO
type PlaceOrderInput struct {
	Email         string // 旧互換のbody email（トークンのemailが優先）
	Items         []CheckoutItemInput
	PaymentMethod string
	Address       string
	ClearCart     *bool // 省略時true
}

// 注文作成の出力。Warningはカートクリア失敗などの非致命の報告。
type PlaceOrderOutput struct {
	Order   model.Order
	Warning string
}

// 注文一覧の出力
type ListOrdersOutput struct {
	Count  int           `json:"count"`
	Orders []model.Order `json:"orders"`
}

// PlaceOrder は注文を確定する。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, tokenEmail string, in PlaceOrderInput) (PlaceOrderOutput, error) {
	var out PlaceOrderOutput

	email := resolveEmail(tokenEmail, in.Email)
	if email == "" || len(in.Items) == 0 {
		return out, NewHTTPError(http.StatusBadRequest, "email and non-empty items array required")
	}

	//アカウントの存在確認
	user, err := u.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrUserNotFound) {
		return out, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return out, NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	//作品ごとに条件付き減算。1件でも失敗したらその場で打ち切り。
	//先に成功した減算は戻らない。
	orderItems := make([]model.OrderItem, 0, len(in.Items))
	var total float64 = 0

	for _, it := range in.Items {
		vcdID := strings.TrimSpace(it.VcdID)
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}

		_, ok, err := u.vcdRepo.DecreaseStockIfEnough(ctx, vcdID, "", qty)
		if err != nil {
			return out, NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
		}
		if !ok {
			return out, NewHTTPError(http.StatusNotFound,
				fmt.Sprintf("VCD '%s' not found or insufficient quantity", vcdID))
		}

		orderItems = append(orderItems, model.OrderItem{
			VcdID:    vcdID,
			Title:    it.Title,
			Price:    it.Price,
			Quantity: qty,
		})

		total += it.Price * float64(qty)
	}

	paymentMethod := strings.TrimSpace(in.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = "unknown"
	}

	//スナップショットを保存（totalはここで凍結）
	created, err := u.orderRepo.Create(ctx, model.Order{
		OrderID:       u.idGen.NewID(),
		UserID:        user.ID,
		Email:         email,
		Items:         orderItems,
		Total:         total,
		PaymentMethod: paymentMethod,
		Address:       in.Address,
		Status:        model.OrderStatusPlaced,
		PlacedAt:      u.clock.Now(),
	})
	if err != nil {
		return out, NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	out.Order = created

	//カートクリアは既定でON。失敗しても注文は確定済みなので警告に留める。
	clearCart := true
	if in.ClearCart != nil {
		clearCart = *in.ClearCart
	}

	if clearCart {
		if err := u.cartRepo.Clear(ctx, user.ID); err != nil {
			out.Warning = "order placed but cart could not be cleared"
		}
	}

	return out, nil
}

// ListOrders はemailの注文を新しい順に返す。
func (u *CheckoutUsecase) ListOrders(ctx context.Context, tokenEmail string, fallbackEmail string) (ListOrdersOutput, error) {
	email := resolveEmail(tokenEmail, fallbackEmail)
	if email == "" {
		return ListOrdersOutput{}, NewHTTPError(http.StatusBadRequest, "Email is required")
	}

	orders, err := u.orderRepo.ListByEmail(ctx, email)
	if err != nil {
		return ListOrdersOutput{}, NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	return ListOrdersOutput{Count: len(orders), Orders: orders}, nil
}

// トークンのemailが最優先。無ければ旧互換のemailに落ちる。
func resolveEmail(tokenEmail string, fallback string) string {
	if e := strings.ToLower(strings.TrimSpace(tokenEmail)); e != "" {
		return e
	}
	return strings.ToLower(strings.TrimSpace(fallback))
}
