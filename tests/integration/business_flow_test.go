package integration

import (
	"context"
	"testing"
	"time"

	directoryapp "github.com/gescom/backend/internal/application/directory"
	financeapp "github.com/gescom/backend/internal/application/finance"
	purchasingapp "github.com/gescom/backend/internal/application/purchasing"
	salesapp "github.com/gescom/backend/internal/application/sales"
	"github.com/gescom/backend/internal/domain/shared"
	"github.com/gescom/backend/internal/infrastructure/persistence"
	"github.com/gescom/backend/internal/infrastructure/sequence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSetup wires repositories and services against a real database
type testSetup struct {
	DB *TestDB

	ClientService        *directoryapp.ClientService
	SupplierService      *directoryapp.SupplierService
	TransportService     *directoryapp.TransportService
	QuotationService     *salesapp.QuotationService
	SupplierOrderService *purchasingapp.SupplierOrderService
	ReceivableService    *financeapp.ReceivableService
}

func newTestSetup(t *testing.T) *testSetup {
	t.Helper()

	testDB := NewTestDB(t)

	quotationRepo := persistence.NewGormQuotationRepository(testDB.DB)
	supplierOrderRepo := persistence.NewGormSupplierOrderRepository(testDB.DB)
	clientRepo := persistence.NewGormClientRepository(testDB.DB)
	supplierRepo := persistence.NewGormSupplierRepository(testDB.DB)
	transportRepo := persistence.NewGormTransportRepository(testDB.DB)
	receivableRepo := persistence.NewGormReceivableRepository(testDB.DB)

	numbers := sequence.NewGenerator(sequence.NewGormSequencer(testDB.DB))

	receivableService := financeapp.NewReceivableService(receivableRepo)
	quotationService := salesapp.NewQuotationService(quotationRepo, numbers)
	quotationService.SetReceivableOpener(receivableService)

	return &testSetup{
		DB:                   testDB,
		ClientService:        directoryapp.NewClientService(clientRepo),
		SupplierService:      directoryapp.NewSupplierService(supplierRepo),
		TransportService:     directoryapp.NewTransportService(transportRepo),
		QuotationService:     quotationService,
		SupplierOrderService: purchasingapp.NewSupplierOrderService(supplierOrderRepo, numbers),
		ReceivableService:    receivableService,
	}
}

func TestIntegration_QuotationToCollectionFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	setup := newTestSetup(t)
	ctx := context.Background()

	// Register the client
	client, err := setup.ClientService.Create(ctx, directoryapp.CreateClientRequest{
		Code:        "cli-001",
		Name:        "Comercial Andina SAC",
		RUC:         "20504030201",
		ContactName: "Maria Quispe",
		Phone:       "+51 987 654 321",
	})
	require.NoError(t, err)
	assert.Equal(t, "CLI-001", client.Code)
	assert.Equal(t, "active", client.Status)

	// Create a quotation for the client
	quotation, err := setup.QuotationService.Create(ctx, salesapp.CreateQuotationRequest{
		ClientID:   client.ID,
		ClientName: client.Name,
		Items: []salesapp.QuotationItemInput{
			{
				ProductName: "Cemento Portland Tipo I",
				Unit:        "bolsa",
				Quantity:    decimal.NewFromInt(100),
				UnitPrice:   decimal.NewFromFloat(28.50),
			},
			{
				ProductName: "Fierro corrugado 1/2\"",
				Unit:        "varilla",
				Quantity:    decimal.NewFromInt(50),
				UnitPrice:   decimal.NewFromFloat(32.00),
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "draft", quotation.Status)
	assert.True(t, decimal.NewFromInt(4450).Equal(quotation.Total),
		"expected total 4450, got %s", quotation.Total)
	assert.Contains(t, quotation.Number, "Q-")

	// Send it to the client and approve it
	_, err = setup.QuotationService.Send(ctx, quotation.ID)
	require.NoError(t, err)

	approved, err := setup.QuotationService.Approve(ctx, quotation.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	assert.NotNil(t, approved.ApprovedAt)

	// Approval opens a collection record for the full total
	receivable, err := setup.ReceivableService.GetBySourceDocument(ctx, quotation.Number)
	require.NoError(t, err)
	assert.Equal(t, "pending", receivable.Status)
	assert.True(t, decimal.NewFromInt(4450).Equal(receivable.Balance))
	assert.Equal(t, client.ID, receivable.ClientID)

	// Partial payment
	updated, err := setup.ReceivableService.RecordPayment(ctx, receivable.ID, financeapp.RecordPaymentRequest{
		Amount: decimal.NewFromInt(2000),
	})
	require.NoError(t, err)
	assert.Equal(t, "partial", updated.Status)
	assert.True(t, decimal.NewFromInt(2450).Equal(updated.Balance))

	// Settle the rest
	settled, err := setup.ReceivableService.RecordPayment(ctx, receivable.ID, financeapp.RecordPaymentRequest{
		Amount: decimal.NewFromInt(2450),
	})
	require.NoError(t, err)
	assert.Equal(t, "settled", settled.Status)
	assert.True(t, settled.Balance.IsZero())
	assert.NotNil(t, settled.SettledAt)
}

func TestIntegration_SupplierOrderFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	setup := newTestSetup(t)
	ctx := context.Background()

	supplier, err := setup.SupplierService.Create(ctx, directoryapp.CreateSupplierRequest{
		Code:         "PRV-001",
		Name:         "Distribuidora Norte EIRL",
		RUC:          "20601234567",
		PaymentTerms: "Credito 30 dias",
	})
	require.NoError(t, err)

	order, err := setup.SupplierOrderService.Create(ctx, purchasingapp.CreateSupplierOrderRequest{
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		PaymentTerms: supplier.PaymentTerms,
		Items: []purchasingapp.SupplierOrderItemInput{
			{
				ProductName: "Ladrillo King Kong 18 huecos",
				Unit:        "millar",
				Quantity:    decimal.NewFromInt(5),
				UnitPrice:   decimal.NewFromInt(850),
			},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, order.Number, "OP-")
	assert.Equal(t, "draft", order.Status)
	assert.Equal(t, "unpaid", order.PaymentStatus)
	assert.True(t, decimal.NewFromInt(4250).Equal(order.Total))

	// Walk the full lifecycle
	_, err = setup.SupplierOrderService.Send(ctx, order.ID)
	require.NoError(t, err)

	_, err = setup.SupplierOrderService.Confirm(ctx, order.ID)
	require.NoError(t, err)

	received, err := setup.SupplierOrderService.Receive(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "received", received.Status)
	assert.NotNil(t, received.ReceivedAt)

	paid, err := setup.SupplierOrderService.SetPaymentStatus(ctx, order.ID, purchasingapp.SetPaymentStatusRequest{
		PaymentStatus: "paid",
	})
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.PaymentStatus)

	// Reload by document number
	reloaded, err := setup.SupplierOrderService.GetByNumber(ctx, order.Number)
	require.NoError(t, err)
	assert.Equal(t, order.ID, reloaded.ID)
	assert.Len(t, reloaded.Items, 1)
}

func TestIntegration_DocumentNumbersAreSequential(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	setup := newTestSetup(t)
	ctx := context.Background()

	clientID := uuid.New()
	var numbers []string
	for i := 0; i < 3; i++ {
		q, err := setup.QuotationService.Create(ctx, salesapp.CreateQuotationRequest{
			ClientID:   clientID,
			ClientName: "Comercial Andina SAC",
			Items: []salesapp.QuotationItemInput{
				{
					ProductName: "Cemento Portland Tipo I",
					Quantity:    decimal.NewFromInt(1),
					UnitPrice:   decimal.NewFromFloat(28.50),
				},
			},
		})
		require.NoError(t, err)
		numbers = append(numbers, q.Number)
	}

	period := time.Now().Format("200601")
	assert.Equal(t, "Q-"+period+"-001", numbers[0])
	assert.Equal(t, "Q-"+period+"-002", numbers[1])
	assert.Equal(t, "Q-"+period+"-003", numbers[2])
}

func TestIntegration_OptimisticLocking(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	setup := newTestSetup(t)
	ctx := context.Background()

	quotationRepo := persistence.NewGormQuotationRepository(setup.DB.DB)

	created, err := setup.QuotationService.Create(ctx, salesapp.CreateQuotationRequest{
		ClientID:   uuid.New(),
		ClientName: "Comercial Andina SAC",
		Items: []salesapp.QuotationItemInput{
			{
				ProductName: "Cemento Portland Tipo I",
				Quantity:    decimal.NewFromInt(10),
				UnitPrice:   decimal.NewFromFloat(28.50),
			},
		},
	})
	require.NoError(t, err)

	// Two sessions load the same version
	first, err := quotationRepo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	second, err := quotationRepo.FindByID(ctx, created.ID)
	require.NoError(t, err)

	require.NoError(t, first.Send())
	require.NoError(t, quotationRepo.SaveWithLock(ctx, first))

	// The stale session must be rejected
	require.NoError(t, second.Send())
	err = quotationRepo.SaveWithLock(ctx, second)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONCURRENT_MODIFICATION", domainErr.Code)
}

func TestIntegration_ClientCodeUniqueness(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	setup := newTestSetup(t)
	ctx := context.Background()

	_, err := setup.ClientService.Create(ctx, directoryapp.CreateClientRequest{
		Code: "CLI-001",
		Name: "Comercial Andina SAC",
	})
	require.NoError(t, err)

	_, err = setup.ClientService.Create(ctx, directoryapp.CreateClientRequest{
		Code: "cli-001",
		Name: "Otra Empresa SAC",
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_CODE", domainErr.Code)
}
