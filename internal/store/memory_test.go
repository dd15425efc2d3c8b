package store

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type session struct{ n int }

func TestMemory_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemory[*session]()

	_, err := st.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	s := &session{n: 1}
	require.NoError(t, st.Save(ctx, "a", s))
	got, err := st.Get(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, st.Len())

	removed, err := st.Delete(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, s, removed)
	assert.Zero(t, st.Len())

	_, err = st.Delete(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	st := NewMemory[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := strconv.Itoa(i)
			_ = st.Save(ctx, id, i)
			v, err := st.Get(ctx, id)
			assert.NoError(t, err)
			assert.Equal(t, i, v)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, st.Len())
}
