package sequence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sequenceRow is the persistence model for DB-backed sequences
type sequenceRow struct {
	Series string `gorm:"type:varchar(10);primaryKey"`
	Period string `gorm:"type:varchar(6);primaryKey"`
	Value  int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (sequenceRow) TableName() string {
	return "document_sequences"
}

// GormSequencer implements Sequencer on a database table. Each Next call
// upserts the counter row inside a transaction, so values are unique even
// with concurrent callers. Used when Redis is not available.
type GormSequencer struct {
	db *gorm.DB
}

// NewGormSequencer creates a database-backed sequencer
func NewGormSequencer(db *gorm.DB) *GormSequencer {
	return &GormSequencer{db: db}
}

// Next atomically increments and returns the counter for the series/period.
// The upsert makes concurrent calls on a fresh (series, period) converge on
// the conflict path instead of racing two inserts; the updated row stays
// locked until the transaction commits.
func (s *GormSequencer) Next(ctx context.Context, series, period string) (int64, error) {
	var value int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := sequenceRow{Series: series, Period: period, Value: 1}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "series"}, {Name: "period"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value": gorm.Expr("document_sequences.value + 1"),
			}),
		}).Create(&row).Error
		if err != nil {
			return err
		}

		if err := tx.Where("series = ? AND period = ?", series, period).
			First(&row).Error; err != nil {
			return err
		}
		value = row.Value
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	return value, nil
}

// Current returns the last value handed out for the series/period, 0 if none
func (s *GormSequencer) Current(ctx context.Context, series, period string) (int64, error) {
	var row sequenceRow
	err := s.db.WithContext(ctx).
		Where("series = ? AND period = ?", series, period).
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read sequence: %w", err)
	}
	return row.Value, nil
}

// Close is a no-op; the database connection is owned by the caller
func (s *GormSequencer) Close() error {
	return nil
}

var _ Sequencer = (*GormSequencer)(nil)
