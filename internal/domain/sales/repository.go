package sales

import (
	"context"

	"github.com/gescom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// QuotationRepository defines the interface for quotation persistence
type QuotationRepository interface {
	// FindByID finds a quotation by ID, loading its items
	FindByID(ctx context.Context, id uuid.UUID) (*Quotation, error)

	// FindByNumber finds a quotation by its document number
	FindByNumber(ctx context.Context, number string) (*Quotation, error)

	// FindAll finds quotations matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Quotation, error)

	// FindByClient finds quotations for a client
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Quotation, error)

	// FindByStatus finds quotations by status
	FindByStatus(ctx context.Context, status QuotationStatus, filter shared.Filter) ([]Quotation, error)

	// Save creates or updates a quotation and its items in one transaction
	Save(ctx context.Context, quotation *Quotation) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, quotation *Quotation) error

	// Delete deletes a quotation and its items in one transaction
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts quotations matching the filter, ignoring pagination
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts quotations in a given status
	CountByStatus(ctx context.Context, status QuotationStatus) (int64, error)

	// ExistsByNumber checks if a document number is already in use
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}
