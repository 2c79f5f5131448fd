package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gescom/backend/internal/domain/sales"
	"github.com/gescom/backend/internal/domain/shared"
	"github.com/gescom/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormQuotationRepository implements QuotationRepository using GORM
type GormQuotationRepository struct {
	db *gorm.DB
}

// NewGormQuotationRepository creates a new GormQuotationRepository
func NewGormQuotationRepository(db *gorm.DB) *GormQuotationRepository {
	return &GormQuotationRepository{db: db}
}

// FindByID finds a quotation by its ID
func (r *GormQuotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Quotation, error) {
	var model models.QuotationModel
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

// FindByNumber finds a quotation by its document number
func (r *GormQuotationRepository) FindByNumber(ctx context.Context, number string) (*sales.Quotation, error) {
	var model models.QuotationModel
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

// FindAll finds quotations matching the filter
func (r *GormQuotationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Quotation, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.QuotationModel{}), filter)
	return r.findModels(query)
}

// FindByClient finds quotations for a client
func (r *GormQuotationRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]sales.Quotation, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.QuotationModel{}).Where("client_id = ?", clientID),
		filter,
	)
	return r.findModels(query)
}

// FindByStatus finds quotations by status
func (r *GormQuotationRepository) FindByStatus(ctx context.Context, status sales.QuotationStatus, filter shared.Filter) ([]sales.Quotation, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.QuotationModel{}).Where("status = ?", status),
		filter,
	)
	return r.findModels(query)
}

func (r *GormQuotationRepository) findModels(query *gorm.DB) ([]sales.Quotation, error) {
	var rows []models.QuotationModel
	if err := query.Preload("Items").Find(&rows).Error; err != nil {
		return nil, err
	}
	quotations := make([]sales.Quotation, len(rows))
	for i := range rows {
		quotations[i] = *rows[i].ToDomain()
	}
	return quotations, nil
}

// Save creates or updates a quotation and its items in one transaction
func (r *GormQuotationRepository) Save(ctx context.Context, quotation *sales.Quotation) error {
	model := models.QuotationModelFromDomain(quotation)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		return r.saveItems(tx, model)
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormQuotationRepository) SaveWithLock(ctx context.Context, quotation *sales.Quotation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&models.QuotationModel{}).
			Where("id = ?", quotation.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if currentVersion != quotation.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The quotation has been modified by another user")
		}

		quotation.Version++
		quotation.UpdatedAt = time.Now()

		result := tx.Model(&models.QuotationModel{}).
			Where("id = ? AND version = ?", quotation.ID, currentVersion).
			Updates(map[string]interface{}{
				"client_id":        quotation.ClientID,
				"client_name":      quotation.ClientName,
				"issue_date":       quotation.IssueDate,
				"expiry_date":      quotation.ExpiryDate,
				"total":            quotation.Total,
				"status":           quotation.Status,
				"delivery_address": quotation.DeliveryAddress,
				"payment_notes":    quotation.PaymentNotes,
				"order_notes":      quotation.OrderNotes,
				"sent_at":          quotation.SentAt,
				"approved_at":      quotation.ApprovedAt,
				"rejected_at":      quotation.RejectedAt,
				"reject_reason":    quotation.RejectReason,
				"version":          quotation.Version,
				"updated_at":       quotation.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The quotation has been modified by another user")
		}

		model := models.QuotationModelFromDomain(quotation)
		return r.saveItems(tx, model)
	})
}

// saveItems reconciles the item rows with the aggregate's current item list:
// rows no longer present are deleted, the rest are upserted.
func (r *GormQuotationRepository) saveItems(tx *gorm.DB, model *models.QuotationModel) error {
	currentItemIDs := make([]uuid.UUID, len(model.Items))
	for i, item := range model.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("quotation_id = ? AND id NOT IN ?", model.ID, currentItemIDs).
			Delete(&models.QuotationItemModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("quotation_id = ?", model.ID).
			Delete(&models.QuotationItemModel{}).Error; err != nil {
			return err
		}
	}

	for i := range model.Items {
		model.Items[i].QuotationID = model.ID
		if err := tx.Save(&model.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes a quotation and its items in one transaction
func (r *GormQuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quotation_id = ?", id).Delete(&models.QuotationItemModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.QuotationModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts quotations matching the filter, ignoring pagination
func (r *GormQuotationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.QuotationModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts quotations in a given status
func (r *GormQuotationRepository) CountByStatus(ctx context.Context, status sales.QuotationStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.QuotationModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks if a document number is already in use
func (r *GormQuotationRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.QuotationModel{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormQuotationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, QuotationSortFields, "issue_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormQuotationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("number ILIKE ? OR client_name ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("issue_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("issue_date <= ?", t)
			}
		case "expiring_before":
			if t, ok := value.(time.Time); ok {
				query = query.Where("expiry_date IS NOT NULL AND expiry_date < ?", t)
			}
		}
	}

	return query
}

// Ensure GormQuotationRepository implements QuotationRepository
var _ sales.QuotationRepository = (*GormQuotationRepository)(nil)
