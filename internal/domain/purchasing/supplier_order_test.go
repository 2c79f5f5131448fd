package purchasing

import (
	"testing"
	"time"

	"github.com/gescom/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOrder(t *testing.T) *SupplierOrder {
	supplierID := uuid.New()
	order, err := NewSupplierOrder("OP-202609-001", supplierID, "Distribuidora Norte EIRL", time.Now())
	require.NoError(t, err)
	return order
}

func addTestItem(t *testing.T, order *SupplierOrder, productName string, quantity, price float64) *SupplierOrderItem {
	item, err := order.AddItem(productName, decimal.NewFromFloat(quantity), valueobject.NewMoneyPENFromFloat(price))
	require.NoError(t, err)
	return item
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     OrderStatus
		to       OrderStatus
		canTrans bool
	}{
		// From draft
		{OrderStatusDraft, OrderStatusSent, true},
		{OrderStatusDraft, OrderStatusCancelled, true},
		{OrderStatusDraft, OrderStatusConfirmed, false},
		{OrderStatusDraft, OrderStatusReceived, false},
		// From sent
		{OrderStatusSent, OrderStatusConfirmed, true},
		{OrderStatusSent, OrderStatusCancelled, true},
		{OrderStatusSent, OrderStatusReceived, false},
		{OrderStatusSent, OrderStatusDraft, false},
		// From confirmed
		{OrderStatusConfirmed, OrderStatusReceived, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusSent, false},
		// Terminal states
		{OrderStatusReceived, OrderStatusCancelled, false},
		{OrderStatusReceived, OrderStatusDraft, false},
		{OrderStatusCancelled, OrderStatusSent, false},
		{OrderStatusCancelled, OrderStatusReceived, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusDraft.IsValid())
	assert.True(t, OrderStatusReceived.IsValid())
	assert.False(t, OrderStatus("shipped").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestPaymentStatus_IsValid(t *testing.T) {
	assert.True(t, PaymentStatusUnpaid.IsValid())
	assert.True(t, PaymentStatusPartial.IsValid())
	assert.True(t, PaymentStatusPaid.IsValid())
	assert.False(t, PaymentStatus("overdue").IsValid())
}

func TestValidNumber(t *testing.T) {
	assert.True(t, ValidNumber("OP-202609-001"))
	assert.True(t, ValidNumber("OP-202612-099"))
	assert.False(t, ValidNumber("Q-202609-001"))
	assert.False(t, ValidNumber("OP-2026-001"))
	assert.False(t, ValidNumber("OP-202609-1"))
}

func TestNewSupplierOrder(t *testing.T) {
	supplierID := uuid.New()

	t.Run("creates order with valid inputs", func(t *testing.T) {
		order, err := NewSupplierOrder("OP-202609-001", supplierID, "Distribuidora Norte EIRL", time.Now())
		require.NoError(t, err)

		assert.Equal(t, "OP-202609-001", order.Number)
		assert.Equal(t, supplierID, order.SupplierID)
		assert.Equal(t, OrderStatusDraft, order.Status)
		assert.Equal(t, PaymentStatusUnpaid, order.PaymentStatus)
		assert.Empty(t, order.Items)
		assert.True(t, order.Total.IsZero())
	})

	t.Run("rejects malformed number", func(t *testing.T) {
		_, err := NewSupplierOrder("PO-001", supplierID, "Distribuidora Norte EIRL", time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects nil supplier", func(t *testing.T) {
		_, err := NewSupplierOrder("OP-202609-002", uuid.Nil, "Distribuidora Norte EIRL", time.Now())
		assert.Error(t, err)
	})
}

func TestSupplierOrder_Items(t *testing.T) {
	t.Run("add item recalculates total", func(t *testing.T) {
		order := createTestOrder(t)
		addTestItem(t, order, "Plancha galvanizada 0.9mm", 20, 45.50)
		addTestItem(t, order, "Angulo 1\" x 1/8\"", 30, 14.20)

		assert.Equal(t, 2, order.ItemCount())
		assert.True(t, order.Total.Equal(decimal.NewFromFloat(1336.0)), "got %s", order.Total)
	})

	t.Run("update quantity recalculates total", func(t *testing.T) {
		order := createTestOrder(t)
		item := addTestItem(t, order, "Plancha galvanizada", 20, 45.50)

		require.NoError(t, order.UpdateItemQuantity(item.ID, decimal.NewFromInt(10)))
		assert.True(t, order.Total.Equal(decimal.NewFromFloat(455.0)))
	})

	t.Run("returned item is the stored line", func(t *testing.T) {
		order := createTestOrder(t)

		item := addTestItem(t, order, "Plancha galvanizada", 20, 45.50)
		item.Unit = "plancha"
		item.Description = "0.3mm x 1.8m"

		require.Len(t, order.Items, 1)
		assert.Equal(t, "plancha", order.Items[0].Unit)
		assert.Equal(t, "0.3mm x 1.8m", order.Items[0].Description)
	})

	t.Run("replace items swaps full set", func(t *testing.T) {
		order := createTestOrder(t)
		addTestItem(t, order, "Plancha galvanizada", 20, 45.50)

		require.NoError(t, order.ReplaceItems([]SupplierOrderItem{
			{ProductName: "Tubo cuadrado 2\"", Quantity: decimal.NewFromInt(50), UnitPrice: decimal.NewFromFloat(28.0)},
		}))
		assert.Equal(t, 1, order.ItemCount())
		assert.True(t, order.Total.Equal(decimal.NewFromFloat(1400.0)))
		assert.Equal(t, order.ID, order.Items[0].OrderID)
	})

	t.Run("cannot modify items after send", func(t *testing.T) {
		order := createTestOrder(t)
		item := addTestItem(t, order, "Plancha galvanizada", 20, 45.50)
		require.NoError(t, order.Send())

		_, err := order.AddItem("Otro", decimal.NewFromInt(1), valueobject.NewMoneyPENFromFloat(1))
		assert.Error(t, err)
		assert.Error(t, order.UpdateItemQuantity(item.ID, decimal.NewFromInt(5)))
		assert.Error(t, order.RemoveItem(item.ID))
	})
}

func TestSupplierOrder_Lifecycle(t *testing.T) {
	t.Run("full happy path", func(t *testing.T) {
		order := createTestOrder(t)
		addTestItem(t, order, "Plancha galvanizada", 20, 45.50)

		require.NoError(t, order.Send())
		assert.Equal(t, OrderStatusSent, order.Status)
		require.NotNil(t, order.SentAt)

		require.NoError(t, order.Confirm())
		assert.Equal(t, OrderStatusConfirmed, order.Status)

		require.NoError(t, order.Receive())
		assert.Equal(t, OrderStatusReceived, order.Status)
		require.NotNil(t, order.ReceivedAt)
	})

	t.Run("cannot send without items", func(t *testing.T) {
		order := createTestOrder(t)
		assert.Error(t, order.Send())
	})

	t.Run("cancel requires reason", func(t *testing.T) {
		order := createTestOrder(t)
		assert.Error(t, order.Cancel(""))

		require.NoError(t, order.Cancel("proveedor sin stock"))
		assert.Equal(t, OrderStatusCancelled, order.Status)
		assert.Equal(t, "proveedor sin stock", order.CancelReason)
	})

	t.Run("cannot cancel received order", func(t *testing.T) {
		order := createTestOrder(t)
		addTestItem(t, order, "Plancha galvanizada", 20, 45.50)
		require.NoError(t, order.Send())
		require.NoError(t, order.Confirm())
		require.NoError(t, order.Receive())

		assert.Error(t, order.Cancel("tarde"))
	})
}

func TestSupplierOrder_SetDeliveryDate(t *testing.T) {
	order := createTestOrder(t)

	future := order.OrderDate.AddDate(0, 0, 7)
	require.NoError(t, order.SetDeliveryDate(future))
	require.NotNil(t, order.DeliveryDate)

	assert.Error(t, order.SetDeliveryDate(order.OrderDate.AddDate(0, 0, -1)))
}

func TestSupplierOrder_SetPaymentStatus(t *testing.T) {
	order := createTestOrder(t)

	require.NoError(t, order.SetPaymentStatus(PaymentStatusPartial))
	assert.Equal(t, PaymentStatusPartial, order.PaymentStatus)

	assert.Error(t, order.SetPaymentStatus(PaymentStatus("refunded")))
}
