package numerator

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock objects
type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the sys_sequences UPSERT: one counter per key,
// atomically incremented under a mutex like the DB row lock would be.
type mockQuerier struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newMockQuerier() *mockQuerier {
	return &mockQuerier{counters: make(map[string]int64)}
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	key, ok := args[0].(string)
	if !ok {
		return &mockRow{err: fmt.Errorf("unexpected key arg %v", args[0])}
	}

	if len(args) == 2 {
		// SetNextNumber path
		val, _ := args[1].(int64)
		m.counters[key] = val
		return &mockRow{val: val}
	}

	m.counters[key]++
	return &mockRow{val: m.counters[key]}
}

func TestGetNextNumber_DailyFormat(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("LOT")

	day := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	num, err := svc.GetNextNumber(ctx, cfg, day)
	require.NoError(t, err)
	assert.Equal(t, "LOT-20260830-001", num)

	num, err = svc.GetNextNumber(ctx, cfg, day)
	require.NoError(t, err)
	assert.Equal(t, "LOT-20260830-002", num)
}

func TestGetNextNumber_ResetsPerDay(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("MINC")

	day1 := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 31, 0, 1, 0, 0, time.UTC)

	num, err := svc.GetNextNumber(ctx, cfg, day1)
	require.NoError(t, err)
	assert.Equal(t, "MINC-20260830-001", num)

	// Next day starts over at 001
	num, err = svc.GetNextNumber(ctx, cfg, day2)
	require.NoError(t, err)
	assert.Equal(t, "MINC-20260831-001", num)
}

func TestGetNextNumber_IndependentPrefixes(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()
	day := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	in, err := svc.GetNextNumber(ctx, DefaultConfig("MINC"), day)
	require.NoError(t, err)
	out, err := svc.GetNextNumber(ctx, DefaultConfig("MOUT"), day)
	require.NoError(t, err)

	assert.Equal(t, "MINC-20260830-001", in)
	assert.Equal(t, "MOUT-20260830-001", out)
}

func TestGetNextNumber_ConcurrentUnique(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("OUT")
	day := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	const n = 100
	results := make(chan string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			num, err := svc.GetNextNumber(ctx, cfg, day)
			if err != nil {
				t.Error(err)
				return
			}
			results <- num
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for num := range results {
		assert.False(t, seen[num], "duplicate number allocated: %s", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)
}

func TestGetNextNumber_WidensPastPad(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("LOT")
	day := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	require.NoError(t, svc.SetNextNumber(ctx, cfg, day, 999))

	num, err := svc.GetNextNumber(ctx, cfg, day)
	require.NoError(t, err)
	assert.Equal(t, "LOT-20260830-1000", num)
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, int64(42), ParseNumber("LOT-20260830-042"))
	assert.Equal(t, int64(7), ParseNumber("P-00007"))
	assert.Equal(t, int64(-1), ParseNumber("garbage"))
	assert.Equal(t, int64(-1), ParseNumber("LOT-"))
}
