package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/gescom/backend/internal/domain/directory"
	"github.com/gescom/backend/internal/domain/shared"
	"github.com/gescom/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTransportRepository implements TransportRepository using GORM
type GormTransportRepository struct {
	db *gorm.DB
}

// NewGormTransportRepository creates a new GormTransportRepository
func NewGormTransportRepository(db *gorm.DB) *GormTransportRepository {
	return &GormTransportRepository{db: db}
}

// FindByID finds a transport company by its ID
func (r *GormTransportRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Transport, error) {
	var model models.TransportModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a transport company by its code
func (r *GormTransportRepository) FindByCode(ctx context.Context, code string) (*directory.Transport, error) {
	var model models.TransportModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds transport companies matching the filter
func (r *GormTransportRepository) FindAll(ctx context.Context, filter shared.Filter) ([]directory.Transport, error) {
	var rows []models.TransportModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TransportModel{}), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	transports := make([]directory.Transport, len(rows))
	for i := range rows {
		transports[i] = *rows[i].ToDomain()
	}
	return transports, nil
}

// Save creates or updates a transport company
func (r *GormTransportRepository) Save(ctx context.Context, transport *directory.Transport) error {
	model := models.TransportModelFromDomain(transport)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a transport company
func (r *GormTransportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TransportModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts transport companies matching the filter, ignoring pagination
func (r *GormTransportRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.TransportModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a transport code is already in use
func (r *GormTransportRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TransportModel{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormTransportRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TransportSortFields, "name")
	orderDir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		orderDir = "DESC"
	}
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTransportRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ? OR ruc ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

// Ensure GormTransportRepository implements TransportRepository
var _ directory.TransportRepository = (*GormTransportRepository)(nil)
