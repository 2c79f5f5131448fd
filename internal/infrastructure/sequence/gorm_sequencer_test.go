package sequence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupSequencerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&sequenceRow{})
	require.NoError(t, err)

	return db
}

func TestGormSequencer_Next(t *testing.T) {
	db := setupSequencerTestDB(t)
	seq := NewGormSequencer(db)
	ctx := context.Background()

	t.Run("creates the row on first use", func(t *testing.T) {
		n, err := seq.Next(ctx, "Q", "202609")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		var row sequenceRow
		err = db.Where("series = ? AND period = ?", "Q", "202609").First(&row).Error
		require.NoError(t, err)
		assert.Equal(t, int64(1), row.Value)
	})

	t.Run("increments the existing row", func(t *testing.T) {
		for want := int64(2); want <= 4; want++ {
			n, err := seq.Next(ctx, "Q", "202609")
			require.NoError(t, err)
			assert.Equal(t, want, n)
		}
	})

	t.Run("pre-existing row takes the conflict path", func(t *testing.T) {
		err := db.Create(&sequenceRow{Series: "Q", Period: "202611", Value: 7}).Error
		require.NoError(t, err)

		n, err := seq.Next(ctx, "Q", "202611")
		require.NoError(t, err)
		assert.Equal(t, int64(8), n)
	})

	t.Run("series and period counters are independent", func(t *testing.T) {
		n, err := seq.Next(ctx, "OP", "202609")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = seq.Next(ctx, "Q", "202610")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestGormSequencer_Current(t *testing.T) {
	db := setupSequencerTestDB(t)
	seq := NewGormSequencer(db)
	ctx := context.Background()

	t.Run("returns zero before any value is handed out", func(t *testing.T) {
		n, err := seq.Current(ctx, "Q", "202609")
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("returns the last value handed out", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := seq.Next(ctx, "Q", "202609")
			require.NoError(t, err)
		}

		n, err := seq.Current(ctx, "Q", "202609")
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})
}

func TestGormSequencer_WithGenerator(t *testing.T) {
	db := setupSequencerTestDB(t)
	gen := NewGenerator(NewGormSequencer(db))
	ctx := context.Background()
	at := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	number, err := gen.NextNumber(ctx, SeriesQuotation, at)
	require.NoError(t, err)
	assert.Equal(t, "Q-202609-001", number)

	number, err = gen.NextNumber(ctx, SeriesQuotation, at)
	require.NoError(t, err)
	assert.Equal(t, "Q-202609-002", number)
}
