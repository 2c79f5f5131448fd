package sales

import (
	"testing"
	"time"

	"github.com/gescom/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestQuotation(t *testing.T) *Quotation {
	clientID := uuid.New()
	q, err := NewQuotation("Q-202609-001", clientID, "Comercial Andina SAC", time.Now())
	require.NoError(t, err)
	return q
}

func addTestItem(t *testing.T, q *Quotation, productName string, quantity, price float64) *QuotationItem {
	unitPrice := valueobject.NewMoneyPENFromFloat(price)
	item, err := q.AddItem(productName, decimal.NewFromFloat(quantity), unitPrice)
	require.NoError(t, err)
	return item
}

// ============================================
// QuotationStatus Tests
// ============================================

func TestQuotationStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  QuotationStatus
		isValid bool
	}{
		{QuotationStatusDraft, true},
		{QuotationStatusSent, true},
		{QuotationStatusApproved, true},
		{QuotationStatusRejected, true},
		{QuotationStatusExpired, true},
		{QuotationStatus("pending"), false},
		{QuotationStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestQuotationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     QuotationStatus
		to       QuotationStatus
		canTrans bool
	}{
		// From draft
		{QuotationStatusDraft, QuotationStatusSent, true},
		{QuotationStatusDraft, QuotationStatusExpired, true},
		{QuotationStatusDraft, QuotationStatusApproved, false},
		{QuotationStatusDraft, QuotationStatusRejected, false},
		// From sent
		{QuotationStatusSent, QuotationStatusApproved, true},
		{QuotationStatusSent, QuotationStatusRejected, true},
		{QuotationStatusSent, QuotationStatusExpired, true},
		{QuotationStatusSent, QuotationStatusDraft, false},
		// Terminal states
		{QuotationStatusApproved, QuotationStatusSent, false},
		{QuotationStatusApproved, QuotationStatusExpired, false},
		{QuotationStatusRejected, QuotationStatusSent, false},
		{QuotationStatusExpired, QuotationStatusSent, false},
		{QuotationStatusExpired, QuotationStatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestQuotationStatus_IsTerminal(t *testing.T) {
	assert.False(t, QuotationStatusDraft.IsTerminal())
	assert.False(t, QuotationStatusSent.IsTerminal())
	assert.True(t, QuotationStatusApproved.IsTerminal())
	assert.True(t, QuotationStatusRejected.IsTerminal())
	assert.True(t, QuotationStatusExpired.IsTerminal())
}

// ============================================
// Number format Tests
// ============================================

func TestValidNumber(t *testing.T) {
	tests := []struct {
		number string
		valid  bool
	}{
		{"Q-202609-001", true},
		{"Q-202612-999", true},
		{"Q-20269-001", false},
		{"Q-202609-01", false},
		{"Q-202609-0011", false},
		{"OP-202609-001", false},
		{"q-202609-001", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidNumber(tt.number))
		})
	}
}

// ============================================
// NewQuotation Tests
// ============================================

func TestNewQuotation(t *testing.T) {
	clientID := uuid.New()

	t.Run("creates quotation with valid inputs", func(t *testing.T) {
		q, err := NewQuotation("Q-202609-001", clientID, "Comercial Andina SAC", time.Now())
		require.NoError(t, err)
		require.NotNil(t, q)

		assert.Equal(t, "Q-202609-001", q.Number)
		assert.Equal(t, clientID, q.ClientID)
		assert.Equal(t, "Comercial Andina SAC", q.ClientName)
		assert.Equal(t, QuotationStatusDraft, q.Status)
		assert.Empty(t, q.Items)
		assert.True(t, q.Total.IsZero())
		assert.Equal(t, 1, q.GetVersion())
	})

	t.Run("defaults issue date when zero", func(t *testing.T) {
		q, err := NewQuotation("Q-202609-002", clientID, "Comercial Andina SAC", time.Time{})
		require.NoError(t, err)
		assert.False(t, q.IssueDate.IsZero())
	})

	t.Run("rejects malformed number", func(t *testing.T) {
		_, err := NewQuotation("COT-001", clientID, "Comercial Andina SAC", time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects empty client", func(t *testing.T) {
		_, err := NewQuotation("Q-202609-003", uuid.Nil, "Comercial Andina SAC", time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects empty client name", func(t *testing.T) {
		_, err := NewQuotation("Q-202609-004", clientID, "", time.Now())
		assert.Error(t, err)
	})
}

// ============================================
// Item management Tests
// ============================================

func TestQuotation_AddItem(t *testing.T) {
	t.Run("adds item and recalculates total", func(t *testing.T) {
		q := createTestQuotation(t)

		item := addTestItem(t, q, "Cemento Portland Tipo I", 10, 28.50)
		assert.Equal(t, q.ID, item.QuotationID)
		assert.True(t, item.Amount.Equal(decimal.NewFromFloat(285.0)))
		assert.True(t, q.Total.Equal(decimal.NewFromFloat(285.0)))

		addTestItem(t, q, "Fierro corrugado 1/2\"", 5, 32.0)
		assert.Equal(t, 2, q.ItemCount())
		assert.True(t, q.Total.Equal(decimal.NewFromFloat(445.0)))
	})

	t.Run("returned item is the stored line", func(t *testing.T) {
		q := createTestQuotation(t)

		item := addTestItem(t, q, "Cemento Portland Tipo I", 10, 28.50)
		item.Code = "CEM-425"
		item.Unit = "bolsa"

		require.Len(t, q.Items, 1)
		assert.Equal(t, "CEM-425", q.Items[0].Code)
		assert.Equal(t, "bolsa", q.Items[0].Unit)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		q := createTestQuotation(t)
		_, err := q.AddItem("Cemento", decimal.Zero, valueobject.NewMoneyPENFromFloat(10))
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		q := createTestQuotation(t)
		_, err := q.AddItem("Cemento", decimal.NewFromInt(1), valueobject.NewMoneyPENFromFloat(-1))
		assert.Error(t, err)
	})

	t.Run("rejects adding to sent quotation", func(t *testing.T) {
		q := createTestQuotation(t)
		addTestItem(t, q, "Cemento", 1, 10)
		require.NoError(t, q.Send())

		_, err := q.AddItem("Fierro", decimal.NewFromInt(1), valueobject.NewMoneyPENFromFloat(5))
		assert.Error(t, err)
	})
}

func TestQuotation_ReplaceItems(t *testing.T) {
	t.Run("replaces full item set and recomputes total", func(t *testing.T) {
		q := createTestQuotation(t)
		addTestItem(t, q, "Cemento", 10, 28.50)

		replacement := []QuotationItem{
			{ProductName: "Ladrillo King Kong", Quantity: decimal.NewFromInt(1000), UnitPrice: decimal.NewFromFloat(0.85)},
			{ProductName: "Arena gruesa m3", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromFloat(55)},
		}
		require.NoError(t, q.ReplaceItems(replacement))

		assert.Equal(t, 2, q.ItemCount())
		assert.True(t, q.Total.Equal(decimal.NewFromFloat(1070.0)), "got %s", q.Total)
		for _, item := range q.Items {
			assert.NotEqual(t, uuid.Nil, item.ID)
			assert.Equal(t, q.ID, item.QuotationID)
		}
	})

	t.Run("rejects invalid incoming item", func(t *testing.T) {
		q := createTestQuotation(t)
		err := q.ReplaceItems([]QuotationItem{
			{ProductName: "", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		})
		assert.Error(t, err)
	})

	t.Run("rejects replacing on non-draft", func(t *testing.T) {
		q := createTestQuotation(t)
		addTestItem(t, q, "Cemento", 1, 10)
		require.NoError(t, q.Send())
		assert.Error(t, q.ReplaceItems(nil))
	})
}

func TestQuotation_UpdateItemQuantity(t *testing.T) {
	q := createTestQuotation(t)
	item := addTestItem(t, q, "Cemento", 10, 28.50)

	require.NoError(t, q.UpdateItemQuantity(item.ID, decimal.NewFromInt(20)))
	assert.True(t, q.Total.Equal(decimal.NewFromFloat(570.0)))

	err := q.UpdateItemQuantity(uuid.New(), decimal.NewFromInt(1))
	assert.Error(t, err)
}

func TestQuotation_RemoveItem(t *testing.T) {
	q := createTestQuotation(t)
	item := addTestItem(t, q, "Cemento", 10, 28.50)
	addTestItem(t, q, "Fierro", 5, 32)

	require.NoError(t, q.RemoveItem(item.ID))
	assert.Equal(t, 1, q.ItemCount())
	assert.True(t, q.Total.Equal(decimal.NewFromFloat(160.0)))

	assert.Error(t, q.RemoveItem(item.ID))
}

// ============================================
// Lifecycle Tests
// ============================================

func TestQuotation_Send(t *testing.T) {
	t.Run("sends draft with items", func(t *testing.T) {
		q := createTestQuotation(t)
		addTestItem(t, q, "Cemento", 2, 10)

		require.NoError(t, q.Send())
		assert.Equal(t, QuotationStatusSent, q.Status)
		require.NotNil(t, q.SentAt)
	})

	t.Run("rejects sending without items", func(t *testing.T) {
		q := createTestQuotation(t)
		assert.Error(t, q.Send())
	})

	t.Run("rejects re-sending", func(t *testing.T) {
		q := createTestQuotation(t)
		addTestItem(t, q, "Cemento", 2, 10)
		require.NoError(t, q.Send())
		assert.Error(t, q.Send())
	})
}

func TestQuotation_ApproveRejectExpire(t *testing.T) {
	t.Run("approve sent quotation", func(t *testing.T) {
		q := createTestQuotation(t)
		addTestItem(t, q, "Cemento", 2, 10)
		require.NoError(t, q.Send())

		require.NoError(t, q.Approve())
		assert.Equal(t, QuotationStatusApproved, q.Status)
		require.NotNil(t, q.ApprovedAt)
	})

	t.Run("cannot approve draft", func(t *testing.T) {
		q := createTestQuotation(t)
		assert.Error(t, q.Approve())
	})

	t.Run("reject sent quotation records reason", func(t *testing.T) {
		q := createTestQuotation(t)
		addTestItem(t, q, "Cemento", 2, 10)
		require.NoError(t, q.Send())

		require.NoError(t, q.Reject("precio fuera de presupuesto"))
		assert.Equal(t, QuotationStatusRejected, q.Status)
		assert.Equal(t, "precio fuera de presupuesto", q.RejectReason)
	})

	t.Run("expire works from draft and sent", func(t *testing.T) {
		draft := createTestQuotation(t)
		require.NoError(t, draft.Expire())
		assert.Equal(t, QuotationStatusExpired, draft.Status)

		sent := createTestQuotation(t)
		addTestItem(t, sent, "Cemento", 2, 10)
		require.NoError(t, sent.Send())
		require.NoError(t, sent.Expire())
		assert.Equal(t, QuotationStatusExpired, sent.Status)
	})

	t.Run("cannot expire approved", func(t *testing.T) {
		q := createTestQuotation(t)
		addTestItem(t, q, "Cemento", 2, 10)
		require.NoError(t, q.Send())
		require.NoError(t, q.Approve())
		assert.Error(t, q.Expire())
	})
}

func TestQuotation_SetExpiryDate(t *testing.T) {
	q := createTestQuotation(t)

	future := q.IssueDate.AddDate(0, 0, 15)
	require.NoError(t, q.SetExpiryDate(future))
	require.NotNil(t, q.ExpiryDate)

	past := q.IssueDate.AddDate(0, 0, -1)
	assert.Error(t, q.SetExpiryDate(past))
}

func TestQuotation_IsExpiredBy(t *testing.T) {
	q := createTestQuotation(t)
	assert.False(t, q.IsExpiredBy(time.Now()), "no expiry date set")

	expiry := q.IssueDate.AddDate(0, 0, 15)
	require.NoError(t, q.SetExpiryDate(expiry))
	assert.False(t, q.IsExpiredBy(expiry.AddDate(0, 0, -1)))
	assert.True(t, q.IsExpiredBy(expiry.AddDate(0, 0, 1)))
}

// ============================================
// Total invariant Tests
// ============================================

func TestQuotation_TotalIsDerived(t *testing.T) {
	q := createTestQuotation(t)

	// decimal math stays exact through mutations
	itemA := addTestItem(t, q, "Tubo PVC 4\"", 3, 17.90)
	addTestItem(t, q, "Pegamento PVC", 2, 12.50)
	assert.True(t, q.Total.Equal(decimal.NewFromFloat(78.70)), "got %s", q.Total)

	require.NoError(t, q.UpdateItemQuantity(itemA.ID, decimal.NewFromInt(7)))
	assert.True(t, q.Total.Equal(decimal.NewFromFloat(150.30)), "got %s", q.Total)

	require.NoError(t, q.RemoveItem(itemA.ID))
	assert.True(t, q.Total.Equal(decimal.NewFromFloat(25.0)))
}
