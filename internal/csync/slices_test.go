package csync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceAppendGet(t *testing.T) {
	t.Parallel()

	s := NewSlice[string]()
	require.Zero(t, s.Len())

	s.Append("a")
	s.Append("b", "c")
	require.Equal(t, 3, s.Len())

	v, ok := s.Get(1)
	require.True(t, ok)
	require.Equal(t, "b", v)

	_, ok = s.Get(3)
	require.False(t, ok)
	_, ok = s.Get(-1)
	require.False(t, ok)
}

func TestSliceFromCopies(t *testing.T) {
	t.Parallel()

	src := []int{1, 2, 3}
	s := NewSliceFrom(src)
	src[0] = 99

	v, ok := s.Get(0)
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestSliceSetSlice(t *testing.T) {
	t.Parallel()

	s := NewSliceFrom([]int{1, 2, 3})
	s.SetSlice([]int{7, 8})
	require.Equal(t, []int{7, 8}, s.Slice())
}

func TestSliceSeq(t *testing.T) {
	t.Parallel()

	s := NewSliceFrom([]int{10, 20, 30})

	var got []int
	for v := range s.Seq() {
		got = append(got, v)
	}
	require.Equal(t, []int{10, 20, 30}, got)

	var idx []int
	for i, v := range s.Seq2() {
		idx = append(idx, i)
		require.Equal(t, (i+1)*10, v)
	}
	require.Equal(t, []int{0, 1, 2}, idx)
}

func TestSliceConcurrentAppend(t *testing.T) {
	t.Parallel()

	s := NewSlice[int]()
	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				s.Append(i*100 + j)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1000, s.Len())
}
