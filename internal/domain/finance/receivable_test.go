package finance

import (
	"testing"
	"time"

	"github.com/gescom/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestReceivable(t *testing.T, total float64) *Receivable {
	r, err := NewReceivable("Q-202609-001", uuid.New(), "Constructora Lima SAC",
		valueobject.NewMoneyPENFromFloat(total))
	require.NoError(t, err)
	return r
}

func TestNewReceivable(t *testing.T) {
	t.Run("opens pending receivable for full total", func(t *testing.T) {
		r := createTestReceivable(t, 1500)

		assert.Equal(t, ReceivableStatusPending, r.Status)
		assert.True(t, r.Balance.Equal(decimal.NewFromInt(1500)))
		assert.True(t, r.PaidAmount.IsZero())
	})

	t.Run("rejects non-positive total", func(t *testing.T) {
		_, err := NewReceivable("Q-202609-001", uuid.New(), "Cliente", valueobject.ZeroPEN())
		assert.Error(t, err)
	})

	t.Run("rejects empty source document", func(t *testing.T) {
		_, err := NewReceivable("", uuid.New(), "Cliente", valueobject.NewMoneyPENFromFloat(100))
		assert.Error(t, err)
	})
}

func TestReceivable_RecordPayment(t *testing.T) {
	t.Run("partial payment flips to partial", func(t *testing.T) {
		r := createTestReceivable(t, 1500)

		require.NoError(t, r.RecordPayment(valueobject.NewMoneyPENFromFloat(500)))
		assert.Equal(t, ReceivableStatusPartial, r.Status)
		assert.True(t, r.Balance.Equal(decimal.NewFromInt(1000)))
		assert.True(t, r.PaidAmount.Equal(decimal.NewFromInt(500)))
	})

	t.Run("exact payoff settles", func(t *testing.T) {
		r := createTestReceivable(t, 1500)

		require.NoError(t, r.RecordPayment(valueobject.NewMoneyPENFromFloat(500)))
		require.NoError(t, r.RecordPayment(valueobject.NewMoneyPENFromFloat(1000)))

		assert.Equal(t, ReceivableStatusSettled, r.Status)
		assert.True(t, r.Balance.IsZero())
		require.NotNil(t, r.SettledAt)
	})

	t.Run("overpayment rejected", func(t *testing.T) {
		r := createTestReceivable(t, 100)
		assert.Error(t, r.RecordPayment(valueobject.NewMoneyPENFromFloat(100.01)))
	})

	t.Run("payment on settled receivable rejected", func(t *testing.T) {
		r := createTestReceivable(t, 100)
		require.NoError(t, r.RecordPayment(valueobject.NewMoneyPENFromFloat(100)))
		assert.Error(t, r.RecordPayment(valueobject.NewMoneyPENFromFloat(1)))
	})

	t.Run("non-positive payment rejected", func(t *testing.T) {
		r := createTestReceivable(t, 100)
		assert.Error(t, r.RecordPayment(valueobject.ZeroPEN()))
	})
}

func TestReceivable_Overdue(t *testing.T) {
	t.Run("mark overdue past due date", func(t *testing.T) {
		r := createTestReceivable(t, 800)
		r.SetDueDate(time.Now().AddDate(0, 0, -5))

		require.NoError(t, r.MarkOverdue(time.Now()))
		assert.Equal(t, ReceivableStatusOverdue, r.Status)
	})

	t.Run("cannot mark overdue before due date", func(t *testing.T) {
		r := createTestReceivable(t, 800)
		r.SetDueDate(time.Now().AddDate(0, 0, 5))
		assert.Error(t, r.MarkOverdue(time.Now()))
	})

	t.Run("cannot mark overdue without due date", func(t *testing.T) {
		r := createTestReceivable(t, 800)
		assert.Error(t, r.MarkOverdue(time.Now()))
	})

	t.Run("overdue receivable still accepts payments", func(t *testing.T) {
		r := createTestReceivable(t, 800)
		r.SetDueDate(time.Now().AddDate(0, 0, -5))
		require.NoError(t, r.MarkOverdue(time.Now()))

		require.NoError(t, r.RecordPayment(valueobject.NewMoneyPENFromFloat(800)))
		assert.True(t, r.IsSettled())
	})

	t.Run("IsOverdueBy ignores settled", func(t *testing.T) {
		r := createTestReceivable(t, 800)
		r.SetDueDate(time.Now().AddDate(0, 0, -5))
		assert.True(t, r.IsOverdueBy(time.Now()))

		require.NoError(t, r.RecordPayment(valueobject.NewMoneyPENFromFloat(800)))
		assert.False(t, r.IsOverdueBy(time.Now()))
	})
}
