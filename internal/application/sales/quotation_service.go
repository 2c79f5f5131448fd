package sales

import (
	"context"
	"time"

	"github.com/gescom/backend/internal/domain/sales"
	"github.com/gescom/backend/internal/domain/shared"
	"github.com/gescom/backend/internal/domain/shared/valueobject"
	"github.com/gescom/backend/internal/infrastructure/sequence"
	"github.com/google/uuid"
)

// ReceivableOpener opens a collection record when a quotation is approved.
// Implemented by the finance context.
type ReceivableOpener interface {
	OpenForQuotation(ctx context.Context, quotation *sales.Quotation) error
}

// QuotationService handles quotation business operations
type QuotationService struct {
	quotationRepo    sales.QuotationRepository
	numbers          *sequence.Generator
	receivableOpener ReceivableOpener
}

// NewQuotationService creates a new QuotationService
func NewQuotationService(quotationRepo sales.QuotationRepository, numbers *sequence.Generator) *QuotationService {
	return &QuotationService{
		quotationRepo: quotationRepo,
		numbers:       numbers,
	}
}

// SetReceivableOpener wires the finance context hook used on approval
func (s *QuotationService) SetReceivableOpener(opener ReceivableOpener) {
	s.receivableOpener = opener
}

// Create creates a new draft quotation
func (s *QuotationService) Create(ctx context.Context, req CreateQuotationRequest) (*QuotationResponse, error) {
	issueDate := time.Now()
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}

	number, err := s.numbers.NextNumber(ctx, sequence.SeriesQuotation, issueDate)
	if err != nil {
		return nil, err
	}

	quotation, err := sales.NewQuotation(number, req.ClientID, req.ClientName, issueDate)
	if err != nil {
		return nil, err
	}
	if userID, ok := shared.UserIDFromContext(ctx); ok {
		quotation.SetCreatedBy(userID)
	}

	for _, input := range req.Items {
		if err := addItemFromInput(quotation, input); err != nil {
			return nil, err
		}
	}

	if req.ExpiryDate != nil {
		if err := quotation.SetExpiryDate(*req.ExpiryDate); err != nil {
			return nil, err
		}
	}
	if req.DeliveryAddress != nil {
		addr, err := req.DeliveryAddress.ToValueObject()
		if err != nil {
			return nil, err
		}
		quotation.SetDeliveryAddress(addr)
	}
	if req.PaymentNotes != "" {
		quotation.SetPaymentNotes(req.PaymentNotes)
	}
	if req.OrderNotes != "" {
		quotation.SetOrderNotes(req.OrderNotes)
	}

	if err := s.quotationRepo.Save(ctx, quotation); err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// GetByID retrieves a quotation by ID
func (s *QuotationService) GetByID(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToQuotationResponse(quotation)
	return &response, nil
}

// GetByNumber retrieves a quotation by document number
func (s *QuotationService) GetByNumber(ctx context.Context, number string) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	response := ToQuotationResponse(quotation)
	return &response, nil
}

// List retrieves quotations with filtering and pagination
func (s *QuotationService) List(ctx context.Context, filter QuotationListFilter) ([]QuotationListItemResponse, int64, error) {
	domainFilter := s.toDomainFilter(filter)

	quotations, err := s.quotationRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.quotationRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToQuotationListItemResponses(quotations), total, nil
}

// ListByClient retrieves quotations for a specific client
func (s *QuotationService) ListByClient(ctx context.Context, clientID uuid.UUID, filter QuotationListFilter) ([]QuotationListItemResponse, int64, error) {
	filter.ClientID = &clientID
	return s.List(ctx, filter)
}

// Update applies a sparse update to a draft quotation.
// Only fields present in the request are touched.
func (s *QuotationService) Update(ctx context.Context, id uuid.UUID, req UpdateQuotationRequest) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !quotation.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", "Quotation can only be modified in draft status")
	}

	if req.ClientName != nil {
		if *req.ClientName == "" {
			return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
		}
		quotation.ClientName = *req.ClientName
	}
	if req.ExpiryDate != nil {
		if err := quotation.SetExpiryDate(*req.ExpiryDate); err != nil {
			return nil, err
		}
	}
	if req.DeliveryAddress != nil {
		addr, err := req.DeliveryAddress.ToValueObject()
		if err != nil {
			return nil, err
		}
		quotation.SetDeliveryAddress(addr)
	}
	if req.PaymentNotes != nil {
		quotation.SetPaymentNotes(*req.PaymentNotes)
	}
	if req.OrderNotes != nil {
		quotation.SetOrderNotes(*req.OrderNotes)
	}

	if err := s.quotationRepo.SaveWithLock(ctx, quotation); err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// ReplaceItems replaces the entire item list of a draft quotation
func (s *QuotationService) ReplaceItems(ctx context.Context, id uuid.UUID, req ReplaceQuotationItemsRequest) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]sales.QuotationItem, len(req.Items))
	for i, input := range req.Items {
		items[i] = sales.QuotationItem{
			ProductID:   input.ProductID,
			Code:        input.Code,
			ProductName: input.ProductName,
			Description: input.Description,
			Unit:        input.Unit,
			Quantity:    input.Quantity,
			UnitPrice:   input.UnitPrice,
			TaxRate:     input.TaxRate,
		}
	}

	if err := quotation.ReplaceItems(items); err != nil {
		return nil, err
	}

	if err := s.quotationRepo.SaveWithLock(ctx, quotation); err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// AddItem adds a line item to a draft quotation
func (s *QuotationService) AddItem(ctx context.Context, id uuid.UUID, input QuotationItemInput) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := addItemFromInput(quotation, input); err != nil {
		return nil, err
	}

	if err := s.quotationRepo.SaveWithLock(ctx, quotation); err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// UpdateItem applies a sparse update to a single line item of a draft quotation
func (s *QuotationService) UpdateItem(ctx context.Context, id, itemID uuid.UUID, req UpdateQuotationItemRequest) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Quantity != nil {
		if err := quotation.UpdateItemQuantity(itemID, *req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.UnitPrice != nil {
		if err := quotation.UpdateItemPrice(itemID, valueobject.NewMoneyPEN(*req.UnitPrice)); err != nil {
			return nil, err
		}
	}

	if err := s.quotationRepo.SaveWithLock(ctx, quotation); err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// RemoveItem removes a line item from a draft quotation
func (s *QuotationService) RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := quotation.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.quotationRepo.SaveWithLock(ctx, quotation); err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// Send marks a quotation as sent to the client
func (s *QuotationService) Send(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	return s.transition(ctx, id, func(q *sales.Quotation) error {
		return q.Send()
	})
}

// Approve marks a quotation as approved by the client and opens a
// collection record for its total
func (s *QuotationService) Approve(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := quotation.Approve(); err != nil {
		return nil, err
	}

	if err := s.quotationRepo.SaveWithLock(ctx, quotation); err != nil {
		return nil, err
	}

	if s.receivableOpener != nil {
		if err := s.receivableOpener.OpenForQuotation(ctx, quotation); err != nil {
			return nil, err
		}
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// Reject marks a quotation as rejected by the client
func (s *QuotationService) Reject(ctx context.Context, id uuid.UUID, req RejectQuotationRequest) (*QuotationResponse, error) {
	return s.transition(ctx, id, func(q *sales.Quotation) error {
		return q.Reject(req.Reason)
	})
}

// Expire marks a quotation as expired
func (s *QuotationService) Expire(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	return s.transition(ctx, id, func(q *sales.Quotation) error {
		return q.Expire()
	})
}

// ExpireOverdue expires every open quotation whose expiry date has passed.
// Returns the number of quotations expired.
func (s *QuotationService) ExpireOverdue(ctx context.Context, asOf time.Time) (int, error) {
	filter := shared.Filter{
		Page:     1,
		PageSize: 500,
		Filters: map[string]interface{}{
			"statuses":        []string{string(sales.QuotationStatusDraft), string(sales.QuotationStatusSent)},
			"expiring_before": asOf,
		},
	}

	quotations, err := s.quotationRepo.FindAll(ctx, filter)
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range quotations {
		quotation := &quotations[i]
		if !quotation.IsExpiredBy(asOf) {
			continue
		}
		if err := quotation.Expire(); err != nil {
			continue
		}
		if err := s.quotationRepo.SaveWithLock(ctx, quotation); err != nil {
			return expired, err
		}
		expired++
	}
	return expired, nil
}

// Delete deletes a quotation and its items. Only drafts can be deleted;
// sent and decided quotations stay as a record (approved numbers are
// referenced by receivables).
func (s *QuotationService) Delete(ctx context.Context, id uuid.UUID) error {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !quotation.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft quotations can be deleted")
	}
	return s.quotationRepo.Delete(ctx, id)
}

// StatusSummary returns counts of quotations by status
func (s *QuotationService) StatusSummary(ctx context.Context) (*QuotationStatusSummary, error) {
	summary := &QuotationStatusSummary{}

	statuses := []struct {
		status sales.QuotationStatus
		target *int64
	}{
		{sales.QuotationStatusDraft, &summary.Draft},
		{sales.QuotationStatusSent, &summary.Sent},
		{sales.QuotationStatusApproved, &summary.Approved},
		{sales.QuotationStatusRejected, &summary.Rejected},
		{sales.QuotationStatusExpired, &summary.Expired},
	}

	for _, entry := range statuses {
		count, err := s.quotationRepo.CountByStatus(ctx, entry.status)
		if err != nil {
			return nil, err
		}
		*entry.target = count
		summary.Total += count
	}

	return summary, nil
}

func (s *QuotationService) transition(ctx context.Context, id uuid.UUID, apply func(*sales.Quotation) error) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := apply(quotation); err != nil {
		return nil, err
	}

	if err := s.quotationRepo.SaveWithLock(ctx, quotation); err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

func (s *QuotationService) toDomainFilter(filter QuotationListFilter) shared.Filter {
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
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	if len(filter.Statuses) > 0 {
		domainFilter.Filters["statuses"] = filter.Statuses
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	return domainFilter
}

func addItemFromInput(quotation *sales.Quotation, input QuotationItemInput) error {
	item, err := quotation.AddItem(input.ProductName, input.Quantity, valueobject.NewMoneyPEN(input.UnitPrice))
	if err != nil {
		return err
	}
	item.ProductID = input.ProductID
	item.Code = input.Code
	item.Description = input.Description
	item.Unit = input.Unit
	item.TaxRate = input.TaxRate
	return nil
}
