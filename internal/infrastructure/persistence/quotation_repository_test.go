package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gescom/backend/internal/domain/sales"
	"github.com/gescom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockQuotationRepository creates a GormQuotationRepository with a mocked SQL connection
func newMockQuotationRepository(t *testing.T) (*GormQuotationRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormQuotationRepository(gormDB), mock, mockDB
}

func TestGormQuotationRepository_FindByID(t *testing.T) {
	t.Run("finds existing quotation with items", func(t *testing.T) {
		repo, mock, mockDB := newMockQuotationRepository(t)
		defer mockDB.Close()

		quotationID := uuid.New()
		itemID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "number", "client_id", "client_name", "issue_date", "total", "status", "version"}).
			AddRow(quotationID, "Q-202609-001", uuid.New(), "Comercial Andina SAC", time.Now(), decimal.NewFromInt(2850), "draft", 1)

		mock.ExpectQuery(`SELECT \* FROM "quotations" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(quotationID, 1).
			WillReturnRows(rows)

		itemRows := sqlmock.NewRows([]string{"id", "quotation_id", "product_name", "quantity", "unit_price", "amount"}).
			AddRow(itemID, quotationID, "Cemento Portland Tipo I", decimal.NewFromInt(100), decimal.RequireFromString("28.50"), decimal.NewFromInt(2850))

		mock.ExpectQuery(`SELECT \* FROM "quotation_items" WHERE "quotation_items"\."quotation_id" = \$1`).
			WithArgs(quotationID).
			WillReturnRows(itemRows)

		quotation, err := repo.FindByID(context.Background(), quotationID)

		assert.NoError(t, err)
		require.NotNil(t, quotation)
		assert.Equal(t, quotationID, quotation.ID)
		assert.Equal(t, "Q-202609-001", quotation.Number)
		assert.Equal(t, sales.QuotationStatusDraft, quotation.Status)
		require.Len(t, quotation.Items, 1)
		assert.Equal(t, "Cemento Portland Tipo I", quotation.Items[0].ProductName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing quotation", func(t *testing.T) {
		repo, mock, mockDB := newMockQuotationRepository(t)
		defer mockDB.Close()

		quotationID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "quotations" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(quotationID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		quotation, err := repo.FindByID(context.Background(), quotationID)

		assert.Error(t, err)
		assert.Nil(t, quotation)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormQuotationRepository_FindAll(t *testing.T) {
	t.Run("applies search and default ordering", func(t *testing.T) {
		repo, mock, mockDB := newMockQuotationRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "number", "client_id", "client_name", "issue_date", "total", "status", "version"})

		mock.ExpectQuery(`SELECT \* FROM "quotations" WHERE number ILIKE \$1 OR client_name ILIKE \$2 ORDER BY issue_date DESC LIMIT .*`).
			WithArgs("%andina%", "%andina%", 20).
			WillReturnRows(rows)

		filter := shared.DefaultFilter()
		filter.Search = "andina"
		filter.OrderBy = ""

		quotations, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.Empty(t, quotations)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects unknown sort field", func(t *testing.T) {
		repo, mock, mockDB := newMockQuotationRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "number", "client_id", "client_name", "issue_date", "total", "status", "version"})

		// An unrecognized field falls back to the default order column
		mock.ExpectQuery(`SELECT \* FROM "quotations" ORDER BY issue_date DESC LIMIT .*`).
			WithArgs(20).
			WillReturnRows(rows)

		filter := shared.DefaultFilter()
		filter.OrderBy = "total; DROP TABLE quotations"

		_, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormQuotationRepository_Delete(t *testing.T) {
	t.Run("deletes items before the quotation", func(t *testing.T) {
		repo, mock, mockDB := newMockQuotationRepository(t)
		defer mockDB.Close()

		quotationID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "quotation_items" WHERE quotation_id = \$1`).
			WithArgs(quotationID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "quotations" WHERE id = \$1`).
			WithArgs(quotationID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(context.Background(), quotationID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockQuotationRepository(t)
		defer mockDB.Close()

		quotationID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "quotation_items" WHERE quotation_id = \$1`).
			WithArgs(quotationID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "quotations" WHERE id = \$1`).
			WithArgs(quotationID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), quotationID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormQuotationRepository_ExistsByNumber(t *testing.T) {
	t.Run("reports existing number", func(t *testing.T) {
		repo, mock, mockDB := newMockQuotationRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "quotations" WHERE number = \$1`).
			WithArgs("Q-202609-001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByNumber(context.Background(), "Q-202609-001")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormQuotationRepository_SaveWithLock(t *testing.T) {
	t.Run("rejects stale version", func(t *testing.T) {
		repo, mock, mockDB := newMockQuotationRepository(t)
		defer mockDB.Close()

		q, err := sales.NewQuotation("Q-202609-002", uuid.New(), "Distribuidora Norte EIRL", time.Now())
		require.NoError(t, err)
		q.Version = 1

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "quotations" WHERE id = \$1`).
			WithArgs(q.ID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(3))
		mock.ExpectRollback()

		err = repo.SaveWithLock(context.Background(), q)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONCURRENT_MODIFICATION", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
