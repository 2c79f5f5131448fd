package sequence

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemorySequencer_Next(t *testing.T) {
	seq := NewInMemorySequencer()
	ctx := context.Background()

	t.Run("starts at one and increments", func(t *testing.T) {
		for want := int64(1); want <= 5; want++ {
			n, err := seq.Next(ctx, "Q", "202609")
			require.NoError(t, err)
			assert.Equal(t, want, n)
		}
	})

	t.Run("series and period are independent", func(t *testing.T) {
		n, err := seq.Next(ctx, "OP", "202609")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = seq.Next(ctx, "Q", "202610")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("current reflects last handed out", func(t *testing.T) {
		n, err := seq.Current(ctx, "Q", "202609")
		require.NoError(t, err)
		assert.Equal(t, int64(5), n)

		n, err = seq.Current(ctx, "Q", "209901")
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})
}

func TestInMemorySequencer_Concurrent(t *testing.T) {
	seq := NewInMemorySequencer()
	ctx := context.Background()

	const goroutines = 50
	const perGoroutine = 20

	var wg sync.WaitGroup
	results := make(chan int64, goroutines*perGoroutine)

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				n, err := seq.Next(ctx, "Q", "202609")
				assert.NoError(t, err)
				results <- n
			}
		}()
	}
	wg.Wait()
	close(results)

	// every value handed out exactly once
	seen := make(map[int64]bool)
	for n := range results {
		assert.False(t, seen[n], "duplicate sequence value %d", n)
		seen[n] = true
	}
	assert.Len(t, seen, goroutines*perGoroutine)
}

func TestGenerator_NextNumber(t *testing.T) {
	gen := NewGenerator(NewInMemorySequencer())
	ctx := context.Background()
	at := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	t.Run("quotation numbers match format and increase", func(t *testing.T) {
		pattern := regexp.MustCompile(`^Q-\d{6}-\d{3}$`)

		for i := 1; i <= 3; i++ {
			number, err := gen.NextNumber(ctx, SeriesQuotation, at)
			require.NoError(t, err)
			assert.Regexp(t, pattern, number)
			assert.Equal(t, fmt.Sprintf("Q-202609-%03d", i), number)
		}
	})

	t.Run("supplier order series has its own counter", func(t *testing.T) {
		number, err := gen.NextNumber(ctx, SeriesSupplierOrder, at)
		require.NoError(t, err)
		assert.Equal(t, "OP-202609-001", number)
	})

	t.Run("counter resets with a new month", func(t *testing.T) {
		october := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		number, err := gen.NextNumber(ctx, SeriesQuotation, october)
		require.NoError(t, err)
		assert.Equal(t, "Q-202610-001", number)
	})
}
