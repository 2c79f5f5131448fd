package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gescom/backend/internal/domain/finance"
	"github.com/gescom/backend/internal/domain/shared"
	"github.com/gescom/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReceivableRepository implements ReceivableRepository using GORM
type GormReceivableRepository struct {
	db *gorm.DB
}

// NewGormReceivableRepository creates a new GormReceivableRepository
func NewGormReceivableRepository(db *gorm.DB) *GormReceivableRepository {
	return &GormReceivableRepository{db: db}
}

// FindByID finds a receivable by its ID
func (r *GormReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Receivable, error) {
	var model models.ReceivableModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySourceDocument finds the receivable opened for a document number
func (r *GormReceivableRepository) FindBySourceDocument(ctx context.Context, number string) (*finance.Receivable, error) {
	var model models.ReceivableModel
	if err := r.db.WithContext(ctx).
		Where("source_document = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds receivables matching the filter
func (r *GormReceivableRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Receivable, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ReceivableModel{}), filter)
	return r.findModels(query)
}

// FindByClient finds receivables for a client
func (r *GormReceivableRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]finance.Receivable, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ReceivableModel{}).Where("client_id = ?", clientID),
		filter,
	)
	return r.findModels(query)
}

// FindOverdueCandidates finds unsettled receivables with a due date before now
func (r *GormReceivableRepository) FindOverdueCandidates(ctx context.Context, filter shared.Filter) ([]finance.Receivable, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ReceivableModel{}).
			Where("status IN ?", []string{
				string(finance.ReceivableStatusPending),
				string(finance.ReceivableStatusPartial),
			}).
			Where("due_date IS NOT NULL AND due_date < ?", time.Now()),
		filter,
	)
	return r.findModels(query)
}

func (r *GormReceivableRepository) findModels(query *gorm.DB) ([]finance.Receivable, error) {
	var rows []models.ReceivableModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	receivables := make([]finance.Receivable, len(rows))
	for i := range rows {
		receivables[i] = *rows[i].ToDomain()
	}
	return receivables, nil
}

// Save creates or updates a receivable
func (r *GormReceivableRepository) Save(ctx context.Context, receivable *finance.Receivable) error {
	model := models.ReceivableModelFromDomain(receivable)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormReceivableRepository) SaveWithLock(ctx context.Context, receivable *finance.Receivable) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&models.ReceivableModel{}).
			Where("id = ?", receivable.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if currentVersion != receivable.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The receivable has been modified by another user")
		}

		receivable.Version++
		receivable.UpdatedAt = time.Now()

		result := tx.Model(&models.ReceivableModel{}).
			Where("id = ? AND version = ?", receivable.ID, currentVersion).
			Updates(map[string]interface{}{
				"client_id":   receivable.ClientID,
				"client_name": receivable.ClientName,
				"total":       receivable.Total,
				"paid_amount": receivable.PaidAmount,
				"balance":     receivable.Balance,
				"due_date":    receivable.DueDate,
				"status":      receivable.Status,
				"settled_at":  receivable.SettledAt,
				"notes":       receivable.Notes,
				"version":     receivable.Version,
				"updated_at":  receivable.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The receivable has been modified by another user")
		}
		return nil
	})
}

// Delete deletes a receivable
func (r *GormReceivableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReceivableModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts receivables matching the filter, ignoring pagination
func (r *GormReceivableRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ReceivableModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormReceivableRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ReceivableSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormReceivableRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("source_document ILIKE ? OR client_name ILIKE ?",
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
		case "due_before":
			if t, ok := value.(time.Time); ok {
				query = query.Where("due_date IS NOT NULL AND due_date < ?", t)
			}
		}
	}

	return query
}

// Ensure GormReceivableRepository implements ReceivableRepository
var _ finance.ReceivableRepository = (*GormReceivableRepository)(nil)
