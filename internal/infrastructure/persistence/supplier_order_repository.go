package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gescom/backend/internal/domain/purchasing"
	"github.com/gescom/backend/internal/domain/shared"
	"github.com/gescom/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSupplierOrderRepository implements SupplierOrderRepository using GORM
type GormSupplierOrderRepository struct {
	db *gorm.DB
}

// NewGormSupplierOrderRepository creates a new GormSupplierOrderRepository
func NewGormSupplierOrderRepository(db *gorm.DB) *GormSupplierOrderRepository {
	return &GormSupplierOrderRepository{db: db}
}

// FindByID finds a supplier order by its ID
func (r *GormSupplierOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchasing.SupplierOrder, error) {
	var model models.SupplierOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a supplier order by its document number
func (r *GormSupplierOrderRepository) FindByNumber(ctx context.Context, number string) (*purchasing.SupplierOrder, error) {
	var model models.SupplierOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("number = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds supplier orders matching the filter
func (r *GormSupplierOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchasing.SupplierOrder, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SupplierOrderModel{}), filter)
	return r.findModels(query)
}

// FindBySupplier finds supplier orders for a supplier
func (r *GormSupplierOrderRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]purchasing.SupplierOrder, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.SupplierOrderModel{}).Where("supplier_id = ?", supplierID),
		filter,
	)
	return r.findModels(query)
}

// FindByStatus finds supplier orders by status
func (r *GormSupplierOrderRepository) FindByStatus(ctx context.Context, status purchasing.OrderStatus, filter shared.Filter) ([]purchasing.SupplierOrder, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.SupplierOrderModel{}).Where("status = ?", status),
		filter,
	)
	return r.findModels(query)
}

func (r *GormSupplierOrderRepository) findModels(query *gorm.DB) ([]purchasing.SupplierOrder, error) {
	var rows []models.SupplierOrderModel
	if err := query.Preload("Items").Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]purchasing.SupplierOrder, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// Save creates or updates a supplier order and its items in one transaction
func (r *GormSupplierOrderRepository) Save(ctx context.Context, order *purchasing.SupplierOrder) error {
	model := models.SupplierOrderModelFromDomain(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		return r.saveItems(tx, model)
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormSupplierOrderRepository) SaveWithLock(ctx context.Context, order *purchasing.SupplierOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&models.SupplierOrderModel{}).
			Where("id = ?", order.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if currentVersion != order.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The order has been modified by another user")
		}

		order.Version++
		order.UpdatedAt = time.Now()

		result := tx.Model(&models.SupplierOrderModel{}).
			Where("id = ? AND version = ?", order.ID, currentVersion).
			Updates(map[string]interface{}{
				"supplier_id":      order.SupplierID,
				"supplier_name":    order.SupplierName,
				"order_date":       order.OrderDate,
				"delivery_date":    order.DeliveryDate,
				"total":            order.Total,
				"status":           order.Status,
				"payment_status":   order.PaymentStatus,
				"payment_terms":    order.PaymentTerms,
				"notes":            order.Notes,
				"delivery_address": order.DeliveryAddress,
				"sent_at":          order.SentAt,
				"confirmed_at":     order.ConfirmedAt,
				"received_at":      order.ReceivedAt,
				"cancelled_at":     order.CancelledAt,
				"cancel_reason":    order.CancelReason,
				"version":          order.Version,
				"updated_at":       order.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The order has been modified by another user")
		}

		model := models.SupplierOrderModelFromDomain(order)
		return r.saveItems(tx, model)
	})
}

func (r *GormSupplierOrderRepository) saveItems(tx *gorm.DB, model *models.SupplierOrderModel) error {
	currentItemIDs := make([]uuid.UUID, len(model.Items))
	for i, item := range model.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("order_id = ? AND id NOT IN ?", model.ID, currentItemIDs).
			Delete(&models.SupplierOrderItemModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("order_id = ?", model.ID).
			Delete(&models.SupplierOrderItemModel{}).Error; err != nil {
			return err
		}
	}

	for i := range model.Items {
		model.Items[i].OrderID = model.ID
		if err := tx.Save(&model.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes a supplier order and its items in one transaction
func (r *GormSupplierOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.SupplierOrderItemModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.SupplierOrderModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts supplier orders matching the filter, ignoring pagination
func (r *GormSupplierOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.SupplierOrderModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts supplier orders in a given status
func (r *GormSupplierOrderRepository) CountByStatus(ctx context.Context, status purchasing.OrderStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SupplierOrderModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks if a document number is already in use
func (r *GormSupplierOrderRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SupplierOrderModel{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormSupplierOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, SupplierOrderSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSupplierOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("number ILIKE ? OR supplier_name ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("order_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("order_date <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormSupplierOrderRepository implements SupplierOrderRepository
var _ purchasing.SupplierOrderRepository = (*GormSupplierOrderRepository)(nil)
