package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prapti31kour/CineCart/internal/domain/model"
	repo "github.com/prapti31kour/CineCart/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type VcdRepoMock struct{ mock.Mock }

func (m *VcdRepoMock) ListAll(ctx context.Context) ([]model.Vcd, error) {
	args := m.Called(ctx)
	vcds, _ := args.Get(0).([]model.Vcd)
	return vcds, args.Error(1)
}

func (m *VcdRepoMock) FindByVcdID(ctx context.Context, vcdID string) (model.Vcd, error) {
	args := m.Called(ctx, vcdID)
	v, _ := args.Get(0).(model.Vcd)
	return v, args.Error(1)
}

func (m *VcdRepoMock) FindByVcdIDs(ctx context.Context, vcdIDs []string) ([]model.Vcd, error) {
	args := m.Called(ctx, vcdIDs)
	vcds, _ := args.Get(0).([]model.Vcd)
	return vcds, args.Error(1)
}

func (m *VcdRepoMock) Create(ctx context.Context, v model.Vcd) (model.Vcd, error) {
	args := m.Called(ctx, v)
	created, _ := args.Get(0).(model.Vcd)
	return created, args.Error(1)
}

func (m *VcdRepoMock) UpdateByName(ctx context.Context, name string, patch repo.VcdPatch) (model.Vcd, error) {
	args := m.Called(ctx, name, patch)
	v, _ := args.Get(0).(model.Vcd)
	return v, args.Error(1)
}

func (m *VcdRepoMock) DeleteByName(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *VcdRepoMock) DecreaseStockIfEnough(ctx context.Context, vcdID string, name string, qty int64) (model.Vcd, bool, error) {
	args := m.Called(ctx, vcdID, name, qty)
	v, _ := args.Get(0).(model.Vcd)
	return v, args.Bool(1), args.Error(2)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	created, _ := args.Get(0).(model.Order)
	return created, args.Error(1)
}

func (m *OrderRepoMock) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	args := m.Called(ctx, email)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

type fixedIDGen struct{ id string }

func (g *fixedIDGen) NewID() string { return g.id }

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func newCheckoutFixture() (*UserRepoMock, *VcdRepoMock, *OrderRepoMock, *CartRepoMock, *CheckoutUsecase) {
	uRepo := new(UserRepoMock)
	vRepo := new(VcdRepoMock)
	oRepo := new(OrderRepoMock)
	cRepo := new(CartRepoMock)

	uc := NewCheckoutUsecase(uRepo, vRepo, oRepo, cRepo,
		&fixedIDGen{id: "ord-fixed-0001"},
		&fixedClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
	)
	return uRepo, vRepo, oRepo, cRepo, uc
}

func TestCheckout_PlaceOrder_RequiresItems(t *testing.T) {
	_, vRepo, oRepo, _, uc := newCheckoutFixture()

	_, err := uc.PlaceOrder(context.Background(), "user@example.com", PlaceOrderInput{})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	vRepo.AssertNotCalled(t, "DecreaseStockIfEnough", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	oRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckout_PlaceOrder_RequiresEmail(t *testing.T) {
	_, _, _, _, uc := newCheckoutFixture()

	_, err := uc.PlaceOrder(context.Background(), "", PlaceOrderInput{
		Items: []CheckoutItemInput{{VcdID: "VCD-A", Price: 100, Quantity: 1}},
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestCheckout_PlaceOrder_UserGone_NotFound(t *testing.T) {
	uRepo, _, _, _, uc := newCheckoutFixture()

	uRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, repo.ErrUserNotFound)

	_, err := uc.PlaceOrder(context.Background(), "ghost@example.com", PlaceOrderInput{
		Items: []CheckoutItemInput{{VcdID: "VCD-A", Price: 100, Quantity: 1}},
	})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestCheckout_PlaceOrder_Success_TotalAndSnapshot(t *testing.T) {
	ctx := context.Background()
	uRepo, vRepo, oRepo, cRepo, uc := newCheckoutFixture()

	uRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(cartTestUser(), nil)
	vRepo.On("DecreaseStockIfEnough", mock.Anything, "VCD-A", "", int64(1)).Return(model.Vcd{VcdID: "VCD-A"}, true, nil)
	vRepo.On("DecreaseStockIfEnough", mock.Anything, "VCD-B", "", int64(2)).Return(model.Vcd{VcdID: "VCD-B"}, true, nil)

	var savedOrder model.Order
	oRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		savedOrder = o
		return true
	})).Return(model.Order{OrderID: "ord-fixed-0001", Total: 200}, nil)

	cRepo.On("Clear", mock.Anything, int64(7)).Return(nil)

	//100×1 + 50×2 = 200（価格は申告のまま）
	out, err := uc.PlaceOrder(ctx, "user@example.com", PlaceOrderInput{
		Items: []CheckoutItemInput{
			{VcdID: "VCD-A", Title: "Movie A", Price: 100, Quantity: 1},
			{VcdID: "VCD-B", Title: "Movie B", Price: 50, Quantity: 2},
		},
		Address: "1-2-3 Shibuya",
	})
	assert.NoError(t, err)
	assert.Empty(t, out.Warning)

	assert.Equal(t, float64(200), savedOrder.Total)
	assert.Equal(t, "ord-fixed-0001", savedOrder.OrderID)
	assert.Equal(t, "unknown", savedOrder.PaymentMethod)
	assert.Equal(t, model.OrderStatusPlaced, savedOrder.Status)
	assert.Len(t, savedOrder.Items, 2)
	assert.Equal(t, "Movie B", savedOrder.Items[1].Title)
	assert.Equal(t, int64(2), savedOrder.Items[1].Quantity)

	cRepo.AssertCalled(t, "Clear", mock.Anything, int64(7))
}

func TestCheckout_PlaceOrder_PartialFailure_NoOrderNoRollback(t *testing.T) {
	ctx := context.Background()
	uRepo, vRepo, oRepo, cRepo, uc := newCheckoutFixture()

	uRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(cartTestUser(), nil)
	//Aは減算成功、Bは在庫不足
	vRepo.On("DecreaseStockIfEnough", mock.Anything, "VCD-A", "", int64(1)).Return(model.Vcd{VcdID: "VCD-A"}, true, nil)
	vRepo.On("DecreaseStockIfEnough", mock.Anything, "VCD-B", "", int64(5)).Return(model.Vcd{}, false, nil)

	_, err := uc.PlaceOrder(ctx, "user@example.com", PlaceOrderInput{
		Items: []CheckoutItemInput{
			{VcdID: "VCD-A", Price: 100, Quantity: 1},
			{VcdID: "VCD-B", Price: 50, Quantity: 5},
		},
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Contains(t, he.Message, "VCD-B")

	//Aの減算は実行済み（戻さない）。注文もカートクリアも行われない。
	vRepo.AssertCalled(t, "DecreaseStockIfEnough", mock.Anything, "VCD-A", "", int64(1))
	oRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	cRepo.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestCheckout_PlaceOrder_ZeroQuantityTreatedAsOne(t *testing.T) {
	ctx := context.Background()
	uRepo, vRepo, oRepo, cRepo, uc := newCheckoutFixture()

	uRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(cartTestUser(), nil)
	vRepo.On("DecreaseStockIfEnough", mock.Anything, "VCD-A", "", int64(1)).Return(model.Vcd{VcdID: "VCD-A"}, true, nil)

	var savedOrder model.Order
	oRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		savedOrder = o
		return true
	})).Return(model.Order{}, nil)
	cRepo.On("Clear", mock.Anything, int64(7)).Return(nil)

	_, err := uc.PlaceOrder(ctx, "user@example.com", PlaceOrderInput{
		Items: []CheckoutItemInput{{VcdID: "VCD-A", Price: 100, Quantity: 0}},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), savedOrder.Items[0].Quantity)
	assert.Equal(t, float64(100), savedOrder.Total)
}

func TestCheckout_PlaceOrder_CartClearFailure_WarningOnly(t *testing.T) {
	ctx := context.Background()
	uRepo, vRepo, oRepo, cRepo, uc := newCheckoutFixture()

	uRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(cartTestUser(), nil)
	vRepo.On("DecreaseStockIfEnough", mock.Anything, "VCD-A", "", int64(1)).Return(model.Vcd{}, true, nil)
	oRepo.On("Create", mock.Anything, mock.Anything).Return(model.Order{OrderID: "ord-fixed-0001"}, nil)
	cRepo.On("Clear", mock.Anything, int64(7)).Return(errors.New("deadlock"))

	out, err := uc.PlaceOrder(ctx, "user@example.com", PlaceOrderInput{
		Items: []CheckoutItemInput{{VcdID: "VCD-A", Price: 100, Quantity: 1}},
	})

	//注文自体は成功扱い
	assert.NoError(t, err)
	assert.Equal(t, "ord-fixed-0001", out.Order.OrderID)
	assert.Equal(t, "order placed but cart could not be cleared", out.Warning)
}

func TestCheckout_PlaceOrder_ClearCartFalse_SkipsClear(t *testing.T) {
	ctx := context.Background()
	uRepo, vRepo, oRepo, cRepo, uc := newCheckoutFixture()

	uRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(cartTestUser(), nil)
	vRepo.On("DecreaseStockIfEnough", mock.Anything, "VCD-A", "", int64(1)).Return(model.Vcd{}, true, nil)
	oRepo.On("Create", mock.Anything, mock.Anything).Return(model.Order{}, nil)

	keep := false
	_, err := uc.PlaceOrder(ctx, "user@example.com", PlaceOrderInput{
		Items:     []CheckoutItemInput{{VcdID: "VCD-A", Price: 100, Quantity: 1}},
		ClearCart: &keep,
	})
	assert.NoError(t, err)
	cRepo.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestCheckout_ListOrders_TokenEmailWins(t *testing.T) {
	_, _, oRepo, _, uc := newCheckoutFixture()

	oRepo.On("ListByEmail", mock.Anything, "token@example.com").Return([]model.Order{
		{OrderID: "o1"}, {OrderID: "o2"},
	}, nil)

	out, err := uc.ListOrders(context.Background(), "Token@Example.com ", "query@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 2, out.Count)

	oRepo.AssertCalled(t, "ListByEmail", mock.Anything, "token@example.com")
}

func TestCheckout_ListOrders_NoEmail_BadRequest(t *testing.T) {
	_, _, _, _, uc := newCheckoutFixture()

	_, err := uc.ListOrders(context.Background(), "", "  ")
	assertHTTPStatus(t, err, http.StatusBadRequest)
}
