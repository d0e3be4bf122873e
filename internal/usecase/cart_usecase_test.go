package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prapti31kour/CineCart/internal/domain/model"
	repo "github.com/prapti31kour/CineCart/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartRepoMock) AddQuantity(ctx context.Context, userID int64, vcdID string, qty int64) error {
	args := m.Called(ctx, userID, vcdID, qty)
	return args.Error(0)
}

func (m *CartRepoMock) SetQuantity(ctx context.Context, userID int64, vcdID string, qty int64) (bool, error) {
	args := m.Called(ctx, userID, vcdID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *CartRepoMock) Remove(ctx context.Context, userID int64, vcdID string) error {
	args := m.Called(ctx, userID, vcdID)
	return args.Error(0)
}

func (m *CartRepoMock) Clear(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
	}
}

func cartTestUser() *model.User {
	return &model.User{ID: 7, Email: "user@example.com", Role: model.RoleUser}
}

// =====================
// AddToCart
// =====================

func TestCartUsecase_AddToCart_RejectsZeroQuantity(t *testing.T) {
	uRepo := new(UserRepoMock)
	cRepo := new(CartRepoMock)
	uc := NewCartUsecase(uRepo, cRepo)

	_, err := uc.AddToCart(context.Background(), "user@example.com", AddCartInput{VcdID: "VCD-1", Quantity: 0})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	//カートには一切触らない
	cRepo.AssertNotCalled(t, "AddQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddToCart_RejectsNegativeQuantity(t *testing.T) {
	uc := NewCartUsecase(new(UserRepoMock), new(CartRepoMock))

	_, err := uc.AddToCart(context.Background(), "user@example.com", AddCartInput{VcdID: "VCD-1", Quantity: -3})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestCartUsecase_AddToCart_RejectsNonIntegerQuantity(t *testing.T) {
	uc := NewCartUsecase(new(UserRepoMock), new(CartRepoMock))

	_, err := uc.AddToCart(context.Background(), "user@example.com", AddCartInput{VcdID: "VCD-1", Quantity: 2.5})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestCartUsecase_AddToCart_RejectsMissingVcdID(t *testing.T) {
	uc := NewCartUsecase(new(UserRepoMock), new(CartRepoMock))

	_, err := uc.AddToCart(context.Background(), "user@example.com", AddCartInput{VcdID: "  ", Quantity: 1})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestCartUsecase_AddToCart_UserGone_NotFound(t *testing.T) {
	uRepo := new(UserRepoMock)
	uc := NewCartUsecase(uRepo, new(CartRepoMock))

	uRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, repo.ErrUserNotFound)

	_, err := uc.AddToCart(context.Background(), "ghost@example.com", AddCartInput{VcdID: "VCD-1", Quantity: 1})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestCartUsecase_AddToCart_Success(t *testing.T) {
	ctx := context.Background()
	uRepo := new(UserRepoMock)
	cRepo := new(CartRepoMock)
	uc := NewCartUsecase(uRepo, cRepo)

	uRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(cartTestUser(), nil)
	cRepo.On("AddQuantity", mock.Anything, int64(7), "VCD-1", int64(2)).Return(nil)
	cRepo.On("ListByUserID", mock.Anything, int64(7)).Return([]model.CartItem{
		{UserID: 7, VcdID: "VCD-1", Quantity: 2},
	}, nil)

	cart, err := uc.AddToCart(ctx, "user@example.com", AddCartInput{VcdID: "VCD-1", Quantity: 2})
	assert.NoError(t, err)
	assert.Len(t, cart, 1)
	assert.Equal(t, int64(2), cart[0].Quantity)

	cRepo.AssertExpectations(t)
}

// =====================
// UpdateQuantity
// =====================

func TestCartUsecase_UpdateQuantity_RejectsNonPositive(t *testing.T) {
	uc := NewCartUsecase(new(UserRepoMock), new(CartRepoMock))

	_, err := uc.UpdateQuantity(context.Background(), "user@example.com", UpdateCartInput{ItemID: "VCD-1", Quantity: 0})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestCartUsecase_UpdateQuantity_MissingLine_SilentNoop(t *testing.T) {
	ctx := context.Background()
	uRepo := new(UserRepoMock)
	cRepo := new(CartRepoMock)
	uc := NewCartUsecase(uRepo, cRepo)

	uRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(cartTestUser(), nil)
	//行が無い → false だがエラーにはならない
	cRepo.On("SetQuantity", mock.Anything, int64(7), "VCD-404", int64(3)).Return(false, nil)
	cRepo.On("ListByUserID", mock.Anything, int64(7)).Return([]model.CartItem{}, nil)

	cart, err := uc.UpdateQuantity(ctx, "user@example.com", UpdateCartInput{ItemID: "VCD-404", Quantity: 3})
	assert.NoError(t, err)
	assert.Empty(t, cart)
}

func TestCartUsecase_UpdateQuantity_SetsNotIncrements(t *testing.T) {
	ctx := context.Background()
	uRepo := new(UserRepoMock)
	cRepo := new(CartRepoMock)
	uc := NewCartUsecase(uRepo, cRepo)

	uRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(cartTestUser(), nil)
	cRepo.On("SetQuantity", mock.Anything, int64(7), "VCD-1", int64(5)).Return(true, nil)
	cRepo.On("ListByUserID", mock.Anything, int64(7)).Return([]model.CartItem{
		{UserID: 7, VcdID: "VCD-1", Quantity: 5},
	}, nil)

	cart, err := uc.UpdateQuantity(ctx, "user@example.com", UpdateCartInput{ItemID: "VCD-1", Quantity: 5})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), cart[0].Quantity)

	cRepo.AssertExpectations(t)
}

// =====================
// Remove / Clear / Count
// =====================

func TestCartUsecase_RemoveItem_IdempotentOnSecondCall(t *testing.T) {
	ctx := context.Background()
	uRepo := new(UserRepoMock)
	cRepo := new(CartRepoMock)
	uc := NewCartUsecase(uRepo, cRepo)

	uRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(cartTestUser(), nil)
	cRepo.On("Remove", mock.Anything, int64(7), "VCD-1").Return(nil)
	cRepo.On("ListByUserID", mock.Anything, int64(7)).Return([]model.CartItem{}, nil)

	first, err := uc.RemoveItem(ctx, "user@example.com", "VCD-1")
	assert.NoError(t, err)

	//2回目もno-opで成功し、カートは同じ
	second, err := uc.RemoveItem(ctx, "user@example.com", "VCD-1")
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCartUsecase_ClearCart_ReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	uRepo := new(UserRepoMock)
	cRepo := new(CartRepoMock)
	uc := NewCartUsecase(uRepo, cRepo)

	uRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(cartTestUser(), nil)
	cRepo.On("Clear", mock.Anything, int64(7)).Return(nil)

	cart, err := uc.ClearCart(ctx, "user@example.com")
	assert.NoError(t, err)
	assert.Empty(t, cart)
}

func TestCartUsecase_Count(t *testing.T) {
	ctx := context.Background()
	uRepo := new(UserRepoMock)
	cRepo := new(CartRepoMock)
	uc := NewCartUsecase(uRepo, cRepo)

	uRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(cartTestUser(), nil)
	cRepo.On("ListByUserID", mock.Anything, int64(7)).Return([]model.CartItem{
		{VcdID: "VCD-1", Quantity: 2},
		{VcdID: "VCD-2", Quantity: 3},
	}, nil)

	out, err := uc.Count(ctx, "user@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", out.Email)
	assert.Equal(t, 2, out.ObjectCount)
	assert.Equal(t, int64(5), out.TotalQuantity)
}

// 加算マージの往復を確認するためのインメモリ実装
type memCartRepo struct {
	items []model.CartItem
}

func (m *memCartRepo) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	out := make([]model.CartItem, 0, len(m.items))
	for _, it := range m.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memCartRepo) AddQuantity(ctx context.Context, userID int64, vcdID string, qty int64) error {
	for i := range m.items {
		if m.items[i].UserID == userID && m.items[i].VcdID == vcdID {
			m.items[i].Quantity += qty
			return nil
		}
	}
	m.items = append(m.items, model.CartItem{UserID: userID, VcdID: vcdID, Quantity: qty})
	return nil
}

func (m *memCartRepo) SetQuantity(ctx context.Context, userID int64, vcdID string, qty int64) (bool, error) {
	for i := range m.items {
		if m.items[i].UserID == userID && m.items[i].VcdID == vcdID {
			m.items[i].Quantity = qty
			return true, nil
		}
	}
	return false, nil
}

func (m *memCartRepo) Remove(ctx context.Context, userID int64, vcdID string) error {
	kept := m.items[:0]
	for _, it := range m.items {
		if !(it.UserID == userID && it.VcdID == vcdID) {
			kept = append(kept, it)
		}
	}
	m.items = kept
	return nil
}

func (m *memCartRepo) Clear(ctx context.Context, userID int64) error {
	kept := m.items[:0]
	for _, it := range m.items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	m.items = kept
	return nil
}

func TestCartUsecase_AddToCart_SameVcdMergesIntoOneLine(t *testing.T) {
	ctx := context.Background()
	uRepo := new(UserRepoMock)
	uc := NewCartUsecase(uRepo, &memCartRepo{})

	uRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(cartTestUser(), nil)

	_, err := uc.AddToCart(ctx, "user@example.com", AddCartInput{VcdID: "VCD-X", Quantity: 2})
	assert.NoError(t, err)

	cart, err := uc.AddToCart(ctx, "user@example.com", AddCartInput{VcdID: "VCD-X", Quantity: 3})
	assert.NoError(t, err)

	//同一作品は1行にマージされて 2+3=5
	assert.Len(t, cart, 1)
	assert.Equal(t, "VCD-X", cart[0].VcdID)
	assert.Equal(t, int64(5), cart[0].Quantity)
}

func TestCartUsecase_GetCart_RepoFailure_MapsTo500(t *testing.T) {
	ctx := context.Background()
	uRepo := new(UserRepoMock)
	cRepo := new(CartRepoMock)
	uc := NewCartUsecase(uRepo, cRepo)

	uRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(cartTestUser(), nil)
	cRepo.On("ListByUserID", mock.Anything, int64(7)).Return(nil, errors.New("connection refused"))

	_, err := uc.GetCart(ctx, "user@example.com")
	assertHTTPStatus(t, err, http.StatusInternalServerError)

	//内部のエラー文言はそのまま出さない
	he, _ := AsHTTPError(err)
	assert.NotContains(t, he.Message, "connection refused")
}
