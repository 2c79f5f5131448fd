package finance

import (
	"context"
	"errors"
	"time"

	"github.com/gescom/backend/internal/domain/finance"
	"github.com/gescom/backend/internal/domain/sales"
	"github.com/gescom/backend/internal/domain/shared"
	"github.com/gescom/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableService handles accounts receivable operations
type ReceivableService struct {
	receivableRepo finance.ReceivableRepository
}

// NewReceivableService creates a new ReceivableService
func NewReceivableService(receivableRepo finance.ReceivableRepository) *ReceivableService {
	return &ReceivableService{receivableRepo: receivableRepo}
}

// OpenForQuotation opens a receivable for an approved quotation.
// It is idempotent: approving the same quotation twice opens one receivable.
func (s *ReceivableService) OpenForQuotation(ctx context.Context, quotation *sales.Quotation) error {
	existing, err := s.receivableRepo.FindBySourceDocument(ctx, quotation.Number)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if existing != nil {
		return nil
	}

	receivable, err := finance.NewReceivable(quotation.Number, quotation.ClientID,
		quotation.ClientName, quotation.GetTotalMoney())
	if err != nil {
		return err
	}
	if userID, ok := shared.UserIDFromContext(ctx); ok {
		receivable.SetCreatedBy(userID)
	}

	return s.receivableRepo.Save(ctx, receivable)
}

// Open opens a receivable manually, outside the quotation flow
func (s *ReceivableService) Open(ctx context.Context, req OpenReceivableRequest) (*ReceivableResponse, error) {
	existing, err := s.receivableRepo.FindBySourceDocument(ctx, req.SourceDocument)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_SOURCE", "A receivable already exists for this document")
	}

	receivable, err := finance.NewReceivable(req.SourceDocument, req.ClientID,
		req.ClientName, valueobject.NewMoneyPEN(req.Total))
	if err != nil {
		return nil, err
	}
	if userID, ok := shared.UserIDFromContext(ctx); ok {
		receivable.SetCreatedBy(userID)
	}

	if req.DueDate != nil {
		receivable.SetDueDate(*req.DueDate)
	}
	if req.Notes != "" {
		receivable.SetNotes(req.Notes)
	}

	if err := s.receivableRepo.Save(ctx, receivable); err != nil {
		return nil, err
	}

	response := ToReceivableResponse(receivable)
	return &response, nil
}

// GetByID retrieves a receivable by ID
func (s *ReceivableService) GetByID(ctx context.Context, id uuid.UUID) (*ReceivableResponse, error) {
	receivable, err := s.receivableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToReceivableResponse(receivable)
	return &response, nil
}

// GetBySourceDocument retrieves the receivable opened for a document number
func (s *ReceivableService) GetBySourceDocument(ctx context.Context, number string) (*ReceivableResponse, error) {
	receivable, err := s.receivableRepo.FindBySourceDocument(ctx, number)
	if err != nil {
		return nil, err
	}
	response := ToReceivableResponse(receivable)
	return &response, nil
}

// List retrieves receivables with filtering and pagination
func (s *ReceivableService) List(ctx context.Context, filter ReceivableListFilter) ([]ReceivableResponse, int64, error) {
	domainFilter := s.toDomainFilter(filter)

	receivables, err := s.receivableRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.receivableRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToReceivableResponses(receivables), total, nil
}

// ListByClient retrieves receivables for a specific client
func (s *ReceivableService) ListByClient(ctx context.Context, clientID uuid.UUID, filter ReceivableListFilter) ([]ReceivableResponse, int64, error) {
	filter.ClientID = &clientID
	return s.List(ctx, filter)
}

// RecordPayment applies a payment against the outstanding balance
func (s *ReceivableService) RecordPayment(ctx context.Context, id uuid.UUID, req RecordPaymentRequest) (*ReceivableResponse, error) {
	receivable, err := s.receivableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := receivable.RecordPayment(valueobject.NewMoneyPEN(req.Amount)); err != nil {
		return nil, err
	}

	if err := s.receivableRepo.SaveWithLock(ctx, receivable); err != nil {
		return nil, err
	}

	response := ToReceivableResponse(receivable)
	return &response, nil
}

// SetDueDate sets the collection due date of a receivable
func (s *ReceivableService) SetDueDate(ctx context.Context, id uuid.UUID, req SetDueDateRequest) (*ReceivableResponse, error) {
	receivable, err := s.receivableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	receivable.SetDueDate(req.DueDate)

	if err := s.receivableRepo.SaveWithLock(ctx, receivable); err != nil {
		return nil, err
	}

	response := ToReceivableResponse(receivable)
	return &response, nil
}

// MarkOverdueBatch flags unsettled receivables whose due date passed before asOf.
// Returns the number of receivables marked.
func (s *ReceivableService) MarkOverdueBatch(ctx context.Context, asOf time.Time) (int, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 500
	filter.Filters["due_before"] = asOf

	candidates, err := s.receivableRepo.FindOverdueCandidates(ctx, filter)
	if err != nil {
		return 0, err
	}

	marked := 0
	for i := range candidates {
		receivable := &candidates[i]
		if !receivable.IsOverdueBy(asOf) {
			continue
		}
		if err := receivable.MarkOverdue(asOf); err != nil {
			return marked, err
		}
		if err := s.receivableRepo.SaveWithLock(ctx, receivable); err != nil {
			return marked, err
		}
		marked++
	}

	return marked, nil
}

// Delete removes a receivable
func (s *ReceivableService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.receivableRepo.Delete(ctx, id)
}

// Summary aggregates receivable counts by status and the total outstanding balance
func (s *ReceivableService) Summary(ctx context.Context) (*CollectionSummary, error) {
	summary := &CollectionSummary{Outstanding: decimal.Zero}

	statuses := []struct {
		status finance.ReceivableStatus
		target *int64
	}{
		{finance.ReceivableStatusPending, &summary.Pending},
		{finance.ReceivableStatusPartial, &summary.Partial},
		{finance.ReceivableStatusOverdue, &summary.Overdue},
		{finance.ReceivableStatusSettled, &summary.Settled},
	}

	for _, entry := range statuses {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = entry.status.String()
		count, err := s.receivableRepo.Count(ctx, filter)
		if err != nil {
			return nil, err
		}
		*entry.target = count
	}

	outstandingFilter := shared.DefaultFilter()
	outstandingFilter.PageSize = 500
	outstandingFilter.Filters["statuses"] = []string{
		finance.ReceivableStatusPending.String(),
		finance.ReceivableStatusPartial.String(),
		finance.ReceivableStatusOverdue.String(),
	}

	// walk every page so the sum covers all unsettled receivables
	for {
		unsettled, err := s.receivableRepo.FindAll(ctx, outstandingFilter)
		if err != nil {
			return nil, err
		}
		for i := range unsettled {
			summary.Outstanding = summary.Outstanding.Add(unsettled[i].Balance)
		}
		if len(unsettled) < outstandingFilter.PageSize {
			break
		}
		outstandingFilter.Page++
	}

	return summary, nil
}

func (s *ReceivableService) toDomainFilter(filter ReceivableListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = filter.Status.String()
	}
	if len(filter.Statuses) > 0 {
		domainFilter.Filters["statuses"] = filter.Statuses
	}
	if filter.DueBefore != nil {
		domainFilter.Filters["due_before"] = *filter.DueBefore
	}

	return domainFilter
}
