package purchasing

import (
	"context"
	"testing"
	"time"

	"github.com/gescom/backend/internal/domain/purchasing"
	"github.com/gescom/backend/internal/domain/shared"
	"github.com/gescom/backend/internal/domain/shared/valueobject"
	"github.com/gescom/backend/internal/infrastructure/sequence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSupplierOrderRepository is a mock implementation of SupplierOrderRepository
type MockSupplierOrderRepository struct {
	mock.Mock
}

func (m *MockSupplierOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchasing.SupplierOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchasing.SupplierOrder), args.Error(1)
}

func (m *MockSupplierOrderRepository) FindByNumber(ctx context.Context, number string) (*purchasing.SupplierOrder, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchasing.SupplierOrder), args.Error(1)
}

func (m *MockSupplierOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchasing.SupplierOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]purchasing.SupplierOrder), args.Error(1)
}

func (m *MockSupplierOrderRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]purchasing.SupplierOrder, error) {
	args := m.Called(ctx, supplierID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]purchasing.SupplierOrder), args.Error(1)
}

func (m *MockSupplierOrderRepository) FindByStatus(ctx context.Context, status purchasing.OrderStatus, filter shared.Filter) ([]purchasing.SupplierOrder, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]purchasing.SupplierOrder), args.Error(1)
}

func (m *MockSupplierOrderRepository) Save(ctx context.Context, order *purchasing.SupplierOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSupplierOrderRepository) SaveWithLock(ctx context.Context, order *purchasing.SupplierOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSupplierOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierOrderRepository) CountByStatus(ctx context.Context, status purchasing.OrderStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierOrderRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func newTestSupplierOrderService(repo *MockSupplierOrderRepository) *SupplierOrderService {
	numbers := sequence.NewGenerator(sequence.NewInMemorySequencer())
	return NewSupplierOrderService(repo, numbers)
}

func TestSupplierOrderService_Create(t *testing.T) {
	t.Run("creates draft with derived total and generated number", func(t *testing.T) {
		repo := new(MockSupplierOrderRepository)
		service := newTestSupplierOrderService(repo)

		repo.On("Save", mock.Anything, mock.AnythingOfType("*purchasing.SupplierOrder")).Return(nil)

		orderDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		resp, err := service.Create(context.Background(), CreateSupplierOrderRequest{
			SupplierID:   uuid.New(),
			SupplierName: "Distribuidora Norte EIRL",
			OrderDate:    &orderDate,
			PaymentTerms: "30 dias",
			Items: []SupplierOrderItemInput{
				{ProductName: "Cemento Portland Tipo I", Quantity: decimal.NewFromInt(100), UnitPrice: decimal.NewFromFloat(28.5)},
				{ProductName: "Fierro corrugado 1/2", Quantity: decimal.NewFromInt(50), UnitPrice: decimal.NewFromInt(32)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "OP-202609-001", resp.Number)
		assert.Equal(t, "draft", resp.Status)
		assert.Equal(t, "unpaid", resp.PaymentStatus)
		assert.Equal(t, "30 dias", resp.PaymentTerms)
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(4450)))
		assert.Equal(t, 2, resp.ItemCount)
		repo.AssertExpectations(t)
	})

	t.Run("carries every line field onto the stored item", func(t *testing.T) {
		repo := new(MockSupplierOrderRepository)
		service := newTestSupplierOrderService(repo)

		var stored *purchasing.SupplierOrder
		repo.On("Save", mock.Anything, mock.AnythingOfType("*purchasing.SupplierOrder")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*purchasing.SupplierOrder) }).
			Return(nil)

		productID := uuid.New()
		expected := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)
		_, err := service.Create(context.Background(), CreateSupplierOrderRequest{
			SupplierID:   uuid.New(),
			SupplierName: "Distribuidora Norte EIRL",
			Items: []SupplierOrderItemInput{
				{
					ProductID:            &productID,
					ProductName:          "Ladrillo King Kong",
					Description:          "18 huecos",
					Unit:                 "millar",
					Quantity:             decimal.NewFromInt(5),
					UnitPrice:            decimal.NewFromInt(850),
					ExpectedDeliveryDate: &expected,
				},
			},
		})

		require.NoError(t, err)
		require.NotNil(t, stored)
		require.Len(t, stored.Items, 1)

		item := stored.Items[0]
		assert.Equal(t, "18 huecos", item.Description)
		assert.Equal(t, "millar", item.Unit)
		require.NotNil(t, item.ProductID)
		assert.Equal(t, productID, *item.ProductID)
		require.NotNil(t, item.ExpectedDeliveryDate)
		assert.True(t, expected.Equal(*item.ExpectedDeliveryDate))
	})

	t.Run("rejects delivery date before order date", func(t *testing.T) {
		repo := new(MockSupplierOrderRepository)
		service := newTestSupplierOrderService(repo)

		orderDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		deliveryDate := orderDate.AddDate(0, 0, -3)
		_, err := service.Create(context.Background(), CreateSupplierOrderRequest{
			SupplierID:   uuid.New(),
			SupplierName: "Distribuidora Norte EIRL",
			OrderDate:    &orderDate,
			DeliveryDate: &deliveryDate,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DELIVERY_DATE", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestSupplierOrderService_Update(t *testing.T) {
	t.Run("applies only fields present in request", func(t *testing.T) {
		repo := new(MockSupplierOrderRepository)
		service := newTestSupplierOrderService(repo)

		order, err := purchasing.NewSupplierOrder("OP-202609-001", uuid.New(), "Distribuidora Norte EIRL", time.Now())
		require.NoError(t, err)
		order.SetPaymentTerms("Contado")
		originalSupplierName := order.SupplierName

		repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		repo.On("SaveWithLock", mock.Anything, order).Return(nil)

		notes := "Recoger en almacen central"
		resp, err := service.Update(context.Background(), order.ID, UpdateSupplierOrderRequest{
			Notes: &notes,
		})

		require.NoError(t, err)
		assert.Equal(t, "Recoger en almacen central", resp.Notes)
		assert.Equal(t, "Contado", resp.PaymentTerms)
		assert.Equal(t, originalSupplierName, resp.SupplierName)
		repo.AssertExpectations(t)
	})

	t.Run("refuses to modify a sent order", func(t *testing.T) {
		repo := new(MockSupplierOrderRepository)
		service := newTestSupplierOrderService(repo)

		order, err := purchasing.NewSupplierOrder("OP-202609-002", uuid.New(), "Distribuidora Norte EIRL", time.Now())
		require.NoError(t, err)
		_, err = order.AddItem("Cemento Portland Tipo I", decimal.NewFromInt(10), mustPEN(t, "28.50"))
		require.NoError(t, err)
		require.NoError(t, order.Send())

		repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		terms := "60 dias"
		_, err = service.Update(context.Background(), order.ID, UpdateSupplierOrderRequest{PaymentTerms: &terms})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		repo.AssertNotCalled(t, "SaveWithLock")
	})
}

func TestSupplierOrderService_Lifecycle(t *testing.T) {
	t.Run("draft to sent to confirmed to received", func(t *testing.T) {
		repo := new(MockSupplierOrderRepository)
		service := newTestSupplierOrderService(repo)

		var stored *purchasing.SupplierOrder
		repo.On("Save", mock.Anything, mock.AnythingOfType("*purchasing.SupplierOrder")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*purchasing.SupplierOrder) }).
			Return(nil)

		created, err := service.Create(context.Background(), CreateSupplierOrderRequest{
			SupplierID:   uuid.New(),
			SupplierName: "Distribuidora Norte EIRL",
			Items: []SupplierOrderItemInput{
				{ProductName: "Ladrillo King Kong", Quantity: decimal.NewFromInt(1000), UnitPrice: decimal.NewFromFloat(1.2)},
			},
		})
		require.NoError(t, err)
		require.NotNil(t, stored)

		repo.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)
		repo.On("SaveWithLock", mock.Anything, stored).Return(nil)

		sent, err := service.Send(context.Background(), stored.ID)
		require.NoError(t, err)
		assert.Equal(t, "sent", sent.Status)
		assert.NotNil(t, sent.SentAt)

		confirmed, err := service.Confirm(context.Background(), stored.ID)
		require.NoError(t, err)
		assert.Equal(t, "confirmed", confirmed.Status)

		received, err := service.Receive(context.Background(), stored.ID)
		require.NoError(t, err)
		assert.Equal(t, "received", received.Status)
		assert.NotNil(t, received.ReceivedAt)

		assert.Equal(t, created.Number, received.Number)
		assert.True(t, received.Total.Equal(created.Total))
		repo.AssertExpectations(t)
	})

	t.Run("cancel requires a reason", func(t *testing.T) {
		repo := new(MockSupplierOrderRepository)
		service := newTestSupplierOrderService(repo)

		order, err := purchasing.NewSupplierOrder("OP-202609-003", uuid.New(), "Distribuidora Norte EIRL", time.Now())
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		_, err = service.Cancel(context.Background(), order.ID, CancelSupplierOrderRequest{Reason: ""})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_REASON", domainErr.Code)
		repo.AssertNotCalled(t, "SaveWithLock")
	})

	t.Run("cancel records reason and timestamp", func(t *testing.T) {
		repo := new(MockSupplierOrderRepository)
		service := newTestSupplierOrderService(repo)

		order, err := purchasing.NewSupplierOrder("OP-202609-004", uuid.New(), "Distribuidora Norte EIRL", time.Now())
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		repo.On("SaveWithLock", mock.Anything, order).Return(nil)

		resp, err := service.Cancel(context.Background(), order.ID, CancelSupplierOrderRequest{Reason: "Proveedor sin stock"})

		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, "Proveedor sin stock", resp.CancelReason)
		assert.NotNil(t, resp.CancelledAt)
		repo.AssertExpectations(t)
	})
}

func TestSupplierOrderService_Delete(t *testing.T) {
	t.Run("deletes a draft", func(t *testing.T) {
		repo := new(MockSupplierOrderRepository)
		service := newTestSupplierOrderService(repo)

		order, err := purchasing.NewSupplierOrder("OP-202609-004", uuid.New(), "Distribuidora Norte EIRL", time.Now())
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		repo.On("Delete", mock.Anything, order.ID).Return(nil)

		require.NoError(t, service.Delete(context.Background(), order.ID))
		repo.AssertExpectations(t)
	})

	t.Run("refuses a sent order", func(t *testing.T) {
		repo := new(MockSupplierOrderRepository)
		service := newTestSupplierOrderService(repo)

		order, err := purchasing.NewSupplierOrder("OP-202609-005", uuid.New(), "Distribuidora Norte EIRL", time.Now())
		require.NoError(t, err)
		_, err = order.AddItem("Cemento Portland Tipo I", decimal.NewFromInt(1), mustPEN(t, "28.50"))
		require.NoError(t, err)
		require.NoError(t, order.Send())

		repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		err = service.Delete(context.Background(), order.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		repo.AssertNotCalled(t, "Delete")
	})
}

func TestSupplierOrderService_SetPaymentStatus(t *testing.T) {
	t.Run("moves a confirmed order to partial", func(t *testing.T) {
		repo := new(MockSupplierOrderRepository)
		service := newTestSupplierOrderService(repo)

		order, err := purchasing.NewSupplierOrder("OP-202609-005", uuid.New(), "Distribuidora Norte EIRL", time.Now())
		require.NoError(t, err)
		_, err = order.AddItem("Cemento Portland Tipo I", decimal.NewFromInt(10), mustPEN(t, "28.50"))
		require.NoError(t, err)
		require.NoError(t, order.Send())
		require.NoError(t, order.Confirm())

		repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		repo.On("SaveWithLock", mock.Anything, order).Return(nil)

		resp, err := service.SetPaymentStatus(context.Background(), order.ID, SetPaymentStatusRequest{
			PaymentStatus: purchasing.PaymentStatusPartial,
		})

		require.NoError(t, err)
		assert.Equal(t, "partial", resp.PaymentStatus)
		repo.AssertExpectations(t)
	})

	t.Run("rejects an unknown payment status", func(t *testing.T) {
		repo := new(MockSupplierOrderRepository)
		service := newTestSupplierOrderService(repo)

		order, err := purchasing.NewSupplierOrder("OP-202609-006", uuid.New(), "Distribuidora Norte EIRL", time.Now())
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		_, err = service.SetPaymentStatus(context.Background(), order.ID, SetPaymentStatusRequest{
			PaymentStatus: purchasing.PaymentStatus("refunded"),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PAYMENT_STATUS", domainErr.Code)
		repo.AssertNotCalled(t, "SaveWithLock")
	})
}

func TestSupplierOrderService_StatusSummary(t *testing.T) {
	repo := new(MockSupplierOrderRepository)
	service := newTestSupplierOrderService(repo)

	repo.On("CountByStatus", mock.Anything, purchasing.OrderStatusDraft).Return(int64(3), nil)
	repo.On("CountByStatus", mock.Anything, purchasing.OrderStatusSent).Return(int64(2), nil)
	repo.On("CountByStatus", mock.Anything, purchasing.OrderStatusConfirmed).Return(int64(4), nil)
	repo.On("CountByStatus", mock.Anything, purchasing.OrderStatusReceived).Return(int64(10), nil)
	repo.On("CountByStatus", mock.Anything, purchasing.OrderStatusCancelled).Return(int64(1), nil)

	summary, err := service.StatusSummary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Draft)
	assert.Equal(t, int64(10), summary.Received)
	assert.Equal(t, int64(20), summary.Total)
	repo.AssertExpectations(t)
}

func mustPEN(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyPENFromString(s)
	require.NoError(t, err)
	return m
}
