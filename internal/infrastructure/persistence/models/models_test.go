package models

import (
	"testing"
	"time"

	"github.com/gescom/backend/internal/domain/finance"
	"github.com/gescom/backend/internal/domain/sales"
	"github.com/gescom/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotationModelRoundTrip(t *testing.T) {
	q, err := sales.NewQuotation("Q-202609-001", uuid.New(), "Comercial Andina SAC", time.Now())
	require.NoError(t, err)

	_, err = q.AddItem("Cemento Portland Tipo I", decimal.NewFromInt(100), mustPEN(t, "28.50"))
	require.NoError(t, err)
	_, err = q.AddItem("Fierro corrugado 1/2\"", decimal.NewFromInt(50), mustPEN(t, "32.90"))
	require.NoError(t, err)

	addr, err := valueobject.NewAddress("Av. Argentina 1515", "Callao", "Callao", "Callao")
	require.NoError(t, err)
	q.SetDeliveryAddress(addr)

	m := QuotationModelFromDomain(q)
	assert.Equal(t, "quotations", m.TableName())
	assert.Len(t, m.Items, 2)

	back := m.ToDomain()
	assert.Equal(t, q.ID, back.ID)
	assert.Equal(t, q.Number, back.Number)
	assert.Equal(t, q.ClientID, back.ClientID)
	assert.Equal(t, q.Status, back.Status)
	assert.Equal(t, q.Version, back.Version)
	assert.True(t, q.Total.Equal(back.Total))
	assert.Equal(t, q.DeliveryAddress.District(), back.DeliveryAddress.District())
	require.Len(t, back.Items, 2)
	assert.Equal(t, q.Items[0].ID, back.Items[0].ID)
	assert.True(t, q.Items[0].Amount.Equal(back.Items[0].Amount))
}

func TestReceivableModelRoundTrip(t *testing.T) {
	r, err := finance.NewReceivable("Q-202609-007", uuid.New(), "Distribuidora Norte EIRL", mustPEN(t, "4500.00"))
	require.NoError(t, err)
	require.NoError(t, r.RecordPayment(mustPEN(t, "1500.00")))

	m := ReceivableModelFromDomain(r)
	assert.Equal(t, "receivables", m.TableName())

	back := m.ToDomain()
	assert.Equal(t, r.ID, back.ID)
	assert.Equal(t, r.SourceDocument, back.SourceDocument)
	assert.Equal(t, finance.ReceivableStatusPartial, back.Status)
	assert.True(t, back.Balance.Equal(decimal.RequireFromString("3000.00")))
	assert.Equal(t, r.Version, back.Version)
}

func mustPEN(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyPENFromString(s)
	require.NoError(t, err)
	return m
}
