package purchasing

import (
	"context"
	"time"

	"github.com/gescom/backend/internal/domain/purchasing"
	"github.com/gescom/backend/internal/domain/shared"
	"github.com/gescom/backend/internal/domain/shared/valueobject"
	"github.com/gescom/backend/internal/infrastructure/sequence"
	"github.com/google/uuid"
)

// SupplierOrderService handles supplier order business operations
type SupplierOrderService struct {
	orderRepo purchasing.SupplierOrderRepository
	numbers   *sequence.Generator
}

// NewSupplierOrderService creates a new SupplierOrderService
func NewSupplierOrderService(orderRepo purchasing.SupplierOrderRepository, numbers *sequence.Generator) *SupplierOrderService {
	return &SupplierOrderService{
		orderRepo: orderRepo,
		numbers:   numbers,
	}
}

// Create creates a new draft supplier order
func (s *SupplierOrderService) Create(ctx context.Context, req CreateSupplierOrderRequest) (*SupplierOrderResponse, error) {
	orderDate := time.Now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	number, err := s.numbers.NextNumber(ctx, sequence.SeriesSupplierOrder, orderDate)
	if err != nil {
		return nil, err
	}

	order, err := purchasing.NewSupplierOrder(number, req.SupplierID, req.SupplierName, orderDate)
	if err != nil {
		return nil, err
	}
	if userID, ok := shared.UserIDFromContext(ctx); ok {
		order.SetCreatedBy(userID)
	}

	for _, input := range req.Items {
		if err := addItemFromInput(order, input); err != nil {
			return nil, err
		}
	}

	if req.DeliveryDate != nil {
		if err := order.SetDeliveryDate(*req.DeliveryDate); err != nil {
			return nil, err
		}
	}
	if req.DeliveryAddress != nil {
		addr, err := req.DeliveryAddress.ToValueObject()
		if err != nil {
			return nil, err
		}
		order.SetDeliveryAddress(addr)
	}
	if req.PaymentTerms != "" {
		order.SetPaymentTerms(req.PaymentTerms)
	}
	if req.Notes != "" {
		order.SetNotes(req.Notes)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToSupplierOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a supplier order by ID
func (s *SupplierOrderService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierOrderResponse(order)
	return &response, nil
}

// GetByNumber retrieves a supplier order by document number
func (s *SupplierOrderService) GetByNumber(ctx context.Context, number string) (*SupplierOrderResponse, error) {
	order, err := s.orderRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	response := ToSupplierOrderResponse(order)
	return &response, nil
}

// List retrieves supplier orders with filtering and pagination
func (s *SupplierOrderService) List(ctx context.Context, filter SupplierOrderListFilter) ([]SupplierOrderListItemResponse, int64, error) {
	domainFilter := s.toDomainFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSupplierOrderListItemResponses(orders), total, nil
}

// ListBySupplier retrieves supplier orders for a specific supplier
func (s *SupplierOrderService) ListBySupplier(ctx context.Context, supplierID uuid.UUID, filter SupplierOrderListFilter) ([]SupplierOrderListItemResponse, int64, error) {
	filter.SupplierID = &supplierID
	return s.List(ctx, filter)
}

// Update applies a sparse update to a draft order.
// Only fields present in the request are touched.
func (s *SupplierOrderService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierOrderRequest) (*SupplierOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", "Order can only be modified in draft status")
	}

	if req.SupplierName != nil {
		if *req.SupplierName == "" {
			return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
		}
		order.SupplierName = *req.SupplierName
	}
	if req.DeliveryDate != nil {
		if err := order.SetDeliveryDate(*req.DeliveryDate); err != nil {
			return nil, err
		}
	}
	if req.DeliveryAddress != nil {
		addr, err := req.DeliveryAddress.ToValueObject()
		if err != nil {
			return nil, err
		}
		order.SetDeliveryAddress(addr)
	}
	if req.PaymentTerms != nil {
		order.SetPaymentTerms(*req.PaymentTerms)
	}
	if req.Notes != nil {
		order.SetNotes(*req.Notes)
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToSupplierOrderResponse(order)
	return &response, nil
}

// ReplaceItems replaces the entire item list of a draft order
func (s *SupplierOrderService) ReplaceItems(ctx context.Context, id uuid.UUID, req ReplaceSupplierOrderItemsRequest) (*SupplierOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]purchasing.SupplierOrderItem, len(req.Items))
	for i, input := range req.Items {
		items[i] = purchasing.SupplierOrderItem{
			ProductID:            input.ProductID,
			ProductName:          input.ProductName,
			Description:          input.Description,
			Unit:                 input.Unit,
			Quantity:             input.Quantity,
			UnitPrice:            input.UnitPrice,
			ExpectedDeliveryDate: input.ExpectedDeliveryDate,
		}
	}

	if err := order.ReplaceItems(items); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToSupplierOrderResponse(order)
	return &response, nil
}

// AddItem adds a line item to a draft order
func (s *SupplierOrderService) AddItem(ctx context.Context, id uuid.UUID, input SupplierOrderItemInput) (*SupplierOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := addItemFromInput(order, input); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToSupplierOrderResponse(order)
	return &response, nil
}

// UpdateItem applies a sparse update to a single line item of a draft order
func (s *SupplierOrderService) UpdateItem(ctx context.Context, id, itemID uuid.UUID, req UpdateSupplierOrderItemRequest) (*SupplierOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Quantity != nil {
		if err := order.UpdateItemQuantity(itemID, *req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.UnitPrice != nil {
		if err := order.UpdateItemPrice(itemID, valueobject.NewMoneyPEN(*req.UnitPrice)); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToSupplierOrderResponse(order)
	return &response, nil
}

// RemoveItem removes a line item from a draft order
func (s *SupplierOrderService) RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*SupplierOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToSupplierOrderResponse(order)
	return &response, nil
}

// Send marks an order as sent to the supplier
func (s *SupplierOrderService) Send(ctx context.Context, id uuid.UUID) (*SupplierOrderResponse, error) {
	return s.transition(ctx, id, func(o *purchasing.SupplierOrder) error {
		return o.Send()
	})
}

// Confirm marks an order as confirmed by the supplier
func (s *SupplierOrderService) Confirm(ctx context.Context, id uuid.UUID) (*SupplierOrderResponse, error) {
	return s.transition(ctx, id, func(o *purchasing.SupplierOrder) error {
		return o.Confirm()
	})
}

// Receive marks an order's goods as received
func (s *SupplierOrderService) Receive(ctx context.Context, id uuid.UUID) (*SupplierOrderResponse, error) {
	return s.transition(ctx, id, func(o *purchasing.SupplierOrder) error {
		return o.Receive()
	})
}

// Cancel cancels an order with a reason
func (s *SupplierOrderService) Cancel(ctx context.Context, id uuid.UUID, req CancelSupplierOrderRequest) (*SupplierOrderResponse, error) {
	return s.transition(ctx, id, func(o *purchasing.SupplierOrder) error {
		return o.Cancel(req.Reason)
	})
}

// SetPaymentStatus updates the payment tracking status of an order
func (s *SupplierOrderService) SetPaymentStatus(ctx context.Context, id uuid.UUID, req SetPaymentStatusRequest) (*SupplierOrderResponse, error) {
	return s.transition(ctx, id, func(o *purchasing.SupplierOrder) error {
		return o.SetPaymentStatus(req.PaymentStatus)
	})
}

// Delete deletes a supplier order and its items. Only drafts can be
// deleted; orders already sent to the supplier stay as a record.
func (s *SupplierOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !order.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft supplier orders can be deleted")
	}
	return s.orderRepo.Delete(ctx, id)
}

// StatusSummary returns counts of supplier orders by status
func (s *SupplierOrderService) StatusSummary(ctx context.Context) (*SupplierOrderStatusSummary, error) {
	summary := &SupplierOrderStatusSummary{}

	statuses := []struct {
		status purchasing.OrderStatus
		target *int64
	}{
		{purchasing.OrderStatusDraft, &summary.Draft},
		{purchasing.OrderStatusSent, &summary.Sent},
		{purchasing.OrderStatusConfirmed, &summary.Confirmed},
		{purchasing.OrderStatusReceived, &summary.Received},
		{purchasing.OrderStatusCancelled, &summary.Cancelled},
	}

	for _, entry := range statuses {
		count, err := s.orderRepo.CountByStatus(ctx, entry.status)
		if err != nil {
			return nil, err
		}
		*entry.target = count
		summary.Total += count
	}

	return summary, nil
}

func (s *SupplierOrderService) transition(ctx context.Context, id uuid.UUID, apply func(*purchasing.SupplierOrder) error) (*SupplierOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := apply(order); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToSupplierOrderResponse(order)
	return &response, nil
}

func (s *SupplierOrderService) toDomainFilter(filter SupplierOrderListFilter) shared.Filter {
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

	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	if len(filter.Statuses) > 0 {
		domainFilter.Filters["statuses"] = filter.Statuses
	}
	if filter.PaymentStatus != nil {
		domainFilter.Filters["payment_status"] = string(*filter.PaymentStatus)
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	return domainFilter
}

func addItemFromInput(order *purchasing.SupplierOrder, input SupplierOrderItemInput) error {
	item, err := order.AddItem(input.ProductName, input.Quantity, valueobject.NewMoneyPEN(input.UnitPrice))
	if err != nil {
		return err
	}
	item.ProductID = input.ProductID
	item.Description = input.Description
	item.Unit = input.Unit
	item.ExpectedDeliveryDate = input.ExpectedDeliveryDate
	return nil
}
