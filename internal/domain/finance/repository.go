package finance

import (
	"context"

	"github.com/gescom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReceivableRepository defines the interface for receivable persistence
type ReceivableRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Receivable, error)

	// FindBySourceDocument finds the receivable opened for a document number
	FindBySourceDocument(ctx context.Context, number string) (*Receivable, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]Receivable, error)

	// FindByClient finds receivables for a client
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Receivable, error)

	// FindOverdueCandidates finds unsettled receivables with a due date before now
	FindOverdueCandidates(ctx context.Context, filter shared.Filter) ([]Receivable, error)

	Save(ctx context.Context, receivable *Receivable) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, receivable *Receivable) error

	Delete(ctx context.Context, id uuid.UUID) error

	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
