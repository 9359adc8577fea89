package vscroll

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func newFixedEngine(t *testing.T, count int, height float64, opts ...Option) *Engine {
	t.Helper()
	e, err := New(count, append([]Option{WithFixedItemHeight(height)}, opts...)...)
	require.NoError(t, err)
	return e
}

func newDynamicEngine(t *testing.T, count int, opts ...Option) *Engine {
	t.Helper()
	e, err := New(count, opts...)
	require.NoError(t, err)
	return e
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		count   int
		opts    []Option
		wantErr error
	}{
		{
			name:    "negative count",
			count:   -1,
			wantErr: ErrNegativeCount,
		},
		{
			name:    "zero fixed height",
			count:   10,
			opts:    []Option{WithFixedItemHeight(0)},
			wantErr: ErrInvalidHeight,
		},
		{
			name:    "negative fixed height",
			count:   10,
			opts:    []Option{WithFixedItemHeight(-2)},
			wantErr: ErrInvalidHeight,
		},
		{
			name:    "NaN fixed height",
			count:   10,
			opts:    []Option{WithFixedItemHeight(math.NaN())},
			wantErr: ErrInvalidHeight,
		},
		{
			name:    "zero estimate",
			count:   10,
			opts:    []Option{WithEstimatedItemHeight(0)},
			wantErr: ErrInvalidHeight,
		},
		{
			name:    "infinite estimate",
			count:   10,
			opts:    []Option{WithEstimatedItemHeight(math.Inf(1))},
			wantErr: ErrInvalidHeight,
		},
		{
			name:    "nil height func",
			count:   10,
			opts:    []Option{WithHeightFunc(nil)},
			wantErr: ErrNilHeightFunc,
		},
		{
			name:    "negative overscan",
			count:   10,
			opts:    []Option{WithOverscan(-1)},
			wantErr: ErrInvalidOverscan,
		},
		{
			name:    "zero threshold",
			count:   10,
			opts:    []Option{WithEndReachedThreshold(0)},
			wantErr: ErrInvalidThreshold,
		},
		{
			name:    "threshold above one",
			count:   10,
			opts:    []Option{WithEndReachedThreshold(1.1)},
			wantErr: ErrInvalidThreshold,
		},
		{
			name:    "NaN threshold",
			count:   10,
			opts:    []Option{WithEndReachedThreshold(math.NaN())},
			wantErr: ErrInvalidThreshold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.count, tt.opts...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	e, err := New(0)
	require.NoError(t, err)
	require.Equal(t, 0, e.Count())
	require.Equal(t, EmptyRange, e.VisibleRange())
	require.Equal(t, 0.0, e.TotalHeight())

	// Boundary values are legal.
	_, err = New(10, WithEndReachedThreshold(1))
	require.NoError(t, err)
	_, err = New(10, WithOverscan(0))
	require.NoError(t, err)
}

func TestOffsetOf(t *testing.T) {
	t.Parallel()

	heights := []float64{10, 20, 30, 40}
	e := newDynamicEngine(t, len(heights), WithHeightFunc(func(i int) float64 {
		return heights[i]
	}))

	tests := []struct {
		name  string
		index int
		want  float64
	}{
		{"first item", 0, 0},
		{"second item", 1, 10},
		{"third item", 2, 30},
		{"last item", 3, 60},
		{"one past the end is the total", 4, 100},
		{"past the end clamps to the total", 9, 100},
		{"negative clamps to zero", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, e.OffsetOf(tt.index))
		})
	}
}

func TestHeightOf(t *testing.T) {
	t.Parallel()

	e := newFixedEngine(t, 5, 50)
	require.Equal(t, 50.0, e.HeightOf(0))
	require.Equal(t, 50.0, e.HeightOf(4))
	require.Equal(t, 0.0, e.HeightOf(-1))
	require.Equal(t, 0.0, e.HeightOf(5))
}

func TestTotalHeight(t *testing.T) {
	t.Parallel()

	fixed := newFixedEngine(t, 1000, 50)
	require.Equal(t, 50000.0, fixed.TotalHeight())

	dynamic := newDynamicEngine(t, 10, WithEstimatedItemHeight(25))
	require.Equal(t, 250.0, dynamic.TotalHeight())

	empty := newDynamicEngine(t, 0)
	require.Equal(t, 0.0, empty.TotalHeight())
}

func TestPositionsAreCumulative(t *testing.T) {
	t.Parallel()

	heights := []float64{15, 35, 5, 45}
	e := newDynamicEngine(t, len(heights), WithHeightFunc(func(i int) float64 {
		return heights[i]
	}))

	positions := e.Positions()
	require.Len(t, positions, len(heights))

	var top, sum float64
	for i, p := range positions {
		require.Equal(t, i, p.Index)
		require.Equal(t, top, p.Top, "item %d top must equal the sum of prior heights", i)
		require.Equal(t, heights[i], p.Height)
		top += p.Height
		sum += p.Height
	}
	require.Equal(t, sum, e.TotalHeight())

	// Rebuilding from the same inputs yields the same table.
	require.Equal(t, positions, e.Positions())
}

func TestHeightFuncFallsBackToEstimate(t *testing.T) {
	t.Parallel()

	e := newDynamicEngine(t, 4,
		WithEstimatedItemHeight(40),
		WithHeightFunc(func(i int) float64 {
			if i == 2 {
				return math.NaN()
			}
			return 10
		}),
	)

	require.Equal(t, 10.0, e.HeightOf(0))
	require.Equal(t, 40.0, e.HeightOf(2), "unusable height func value falls back to the estimate")
	require.Equal(t, 70.0, e.TotalHeight())
}

func TestSetCount(t *testing.T) {
	t.Parallel()

	t.Run("grow", func(t *testing.T) {
		e := newDynamicEngine(t, 5)
		require.NoError(t, e.SetCount(8))
		require.Equal(t, 8, e.Count())
		require.Equal(t, 400.0, e.TotalHeight())
	})

	t.Run("shrink", func(t *testing.T) {
		e := newDynamicEngine(t, 8)
		require.NoError(t, e.SetCount(3))
		require.Equal(t, 3, e.Count())
		require.Equal(t, 150.0, e.TotalHeight())
	})

	t.Run("negative", func(t *testing.T) {
		e := newDynamicEngine(t, 5)
		require.ErrorIs(t, e.SetCount(-1), ErrNegativeCount)
		require.Equal(t, 5, e.Count())
	})

	t.Run("unchanged count keeps the version", func(t *testing.T) {
		e := newDynamicEngine(t, 5)
		v := e.Version()
		require.NoError(t, e.SetCount(5))
		require.Equal(t, v, e.Version())
	})
}

func TestResetCollection(t *testing.T) {
	t.Parallel()

	e := newDynamicEngine(t, 10)
	require.True(t, e.Report(4, 80))
	require.Equal(t, 1, e.MeasuredCount())

	require.NoError(t, e.ResetCollection(7, 6))
	require.Equal(t, uint64(7), e.CollectionID())
	require.Equal(t, 6, e.Count())
	require.Equal(t, 0, e.MeasuredCount(), "replacing the collection drops every measurement")
	require.Equal(t, 300.0, e.TotalHeight())

	require.ErrorIs(t, e.ResetCollection(8, -1), ErrNegativeCount)
}

func TestVersionTracksLayoutChanges(t *testing.T) {
	t.Parallel()

	e := newDynamicEngine(t, 10)
	v := e.Version()

	require.NoError(t, e.SetCount(12))
	require.Greater(t, e.Version(), v)
	v = e.Version()

	require.True(t, e.Report(3, 75))
	require.Greater(t, e.Version(), v)
	v = e.Version()

	// A measurement equal to the stored one is not a layout change.
	require.False(t, e.Report(3, 75))
	require.Equal(t, v, e.Version())

	require.NoError(t, e.ResetCollection(1, 12))
	require.Greater(t, e.Version(), v)
}

func TestFixedAndDynamicModesAgree(t *testing.T) {
	t.Parallel()

	const n = 100
	fixed := newFixedEngine(t, n, 50)
	dynamic := newDynamicEngine(t, n, WithHeightFunc(func(int) float64 { return 50 }))

	require.Equal(t, fixed.TotalHeight(), dynamic.TotalHeight())
	for _, offset := range []float64{0, 1, 49, 50, 333.3, 2500, 4999} {
		require.Equal(t,
			fixed.RangeAt(offset, 400),
			dynamic.RangeAt(offset, 400),
			"offset %v", offset)
	}
	for i := 0; i <= n; i++ {
		require.Equal(t, fixed.OffsetOf(i), dynamic.OffsetOf(i))
	}
}
