package usecase

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/prapti31kour/CineCart/internal/domain/model"
	repo "github.com/prapti31kour/CineCart/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// 全操作がトークン由来のemailに紐づく自分のカートだけを触る。
type CartUsecase struct {
	userRepo repo.UserRepository
	cartRepo repo.CartRepository
}

// DI
func NewCartUsecase(userRepo repo.UserRepository, cartRepo repo.CartRepository) *CartUsecase {
	return &CartUsecase{
		userRepo: userRepo,
		cartRepo: cartRepo,
	}
}

// POST /cart/add の入力DTO。
// quantityはJSON数値のまま受けて、整数チェックはこちらでやる。
type AddCartInput struct {
	VcdID    string
	Quantity float64
}

// PUT /cart/update の入力DTO
type UpdateCartInput struct {
	ItemID   string
	Quantity float64
}

// GET /cart/count の出力
type CartCountOutput struct {
	Email         string `json:"email"`
	ObjectCount   int    `json:"objectCount"`
	TotalQuantity int64  `json:"totalQuantity"`
}

// カートに追加（同一作品は数量加算）
func (u *CartUsecase) AddToCart(ctx context.Context, email string, in AddCartInput) ([]model.CartItem, error) {
	vcdID := strings.TrimSpace(in.VcdID)
	if vcdID == "" || !isPositiveInteger(in.Quantity) {
		return nil, NewHTTPError(http.StatusBadRequest, "vcdID and positive quantity are required")
	}

	user, err := u.resolveUser(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := u.cartRepo.AddQuantity(ctx, user.ID, vcdID, int64(in.Quantity)); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	return u.listCart(ctx, user.ID)
}

// カート取得
func (u *CartUsecase) GetCart(ctx context.Context, email string) ([]model.CartItem, error) {
	user, err := u.resolveUser(ctx, email)
	if err != nil {
		return nil, err
	}
	return u.listCart(ctx, user.ID)
}

// 数量の上書き（加算ではない）。
// 対象行が無いときは何もせず成功で返す（冪等なupdate-nothing）。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, email string, in UpdateCartInput) ([]model.CartItem, error) {
	itemID := strings.TrimSpace(in.ItemID)
	if itemID == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "itemId and quantity required")
	}
	if !isPositiveInteger(in.Quantity) {
		return nil, NewHTTPError(http.StatusBadRequest, "quantity must be positive")
	}

	user, err := u.resolveUser(ctx, email)
	if err != nil {
		return nil, err
	}

	if _, err := u.cartRepo.SetQuantity(ctx, user.ID, itemID, int64(in.Quantity)); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return u.listCart(ctx, user.ID)
}

// 明細削除（2回呼んでも2回目はno-opで成功）
func (u *CartUsecase) RemoveItem(ctx context.Context, email string, vcdID string) ([]model.CartItem, error) {
	vcdID = strings.TrimSpace(vcdID)
	if vcdID == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "vcdID required")
	}

	user, err := u.resolveUser(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := u.cartRepo.Remove(ctx, user.ID, vcdID); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	return u.listCart(ctx, user.ID)
}

// カートを空にする
func (u *CartUsecase) ClearCart(ctx context.Context, email string) ([]model.CartItem, error) {
	user, err := u.resolveUser(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := u.cartRepo.Clear(ctx, user.ID); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	return []model.CartItem{}, nil
}

// 行数と総数量
func (u *CartUsecase) Count(ctx context.Context, email string) (CartCountOutput, error) {
	user, err := u.resolveUser(ctx, email)
	if err != nil {
		return CartCountOutput{}, err
	}

	items, err := u.listCart(ctx, user.ID)
	if err != nil {
		return CartCountOutput{}, err
	}

	var total int64 = 0
	for _, it := range items {
		total += it.Quantity
	}

	return CartCountOutput{
		Email:         user.Email,
		ObjectCount:   len(items),
		TotalQuantity: total,
	}, nil
}

// トークンのemailからアカウントを引く。
// 消えたアカウントを指すトークンは404に落とす。
func (u *CartUsecase) resolveUser(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrUserNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}
	return user, nil
}

func (u *CartUsecase) listCart(ctx context.Context, userID int64) ([]model.CartItem, error) {
	items, err := u.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}
	return items, nil
}

// JSONの数値として来た数量が正の整数かどうか
func isPositiveInteger(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= 1 && v == math.Trunc(v)
}
