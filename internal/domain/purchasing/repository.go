package purchasing

import (
	"context"

	"github.com/gescom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierOrderRepository defines the interface for supplier order persistence
type SupplierOrderRepository interface {
	// FindByID finds a supplier order by ID, loading its items
	FindByID(ctx context.Context, id uuid.UUID) (*SupplierOrder, error)

	// FindByNumber finds a supplier order by its document number
	FindByNumber(ctx context.Context, number string) (*SupplierOrder, error)

	// FindAll finds supplier orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]SupplierOrder, error)

	// FindBySupplier finds supplier orders for a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]SupplierOrder, error)

	// FindByStatus finds supplier orders by status
	FindByStatus(ctx context.Context, status OrderStatus, filter shared.Filter) ([]SupplierOrder, error)

	// Save creates or updates a supplier order and its items in one transaction
	Save(ctx context.Context, order *SupplierOrder) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, order *SupplierOrder) error

	// Delete deletes a supplier order and its items in one transaction
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts supplier orders matching the filter, ignoring pagination
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts supplier orders in a given status
	CountByStatus(ctx context.Context, status OrderStatus) (int64, error)

	// ExistsByNumber checks if a document number is already in use
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}
