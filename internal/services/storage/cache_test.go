package storage

import (
	"errors"
	"testing"

	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCache_ProducesOncePerSize(t *testing.T) {
	s1 := models.Rect{Width: 2448, Height: 3168}
	s2 := models.Rect{Width: 2380, Height: 3368}

	cache := NewPageCache[*models.PageImagePair]()
	var calls []int

	var got []*models.PageImagePair
	for i, size := range []models.Rect{s1, s1, s2, s1} {
		i, size := i, size
		pair, err := cache.GetOrCreate(size, func() (*models.PageImagePair, error) {
			calls = append(calls, i)
			return &models.PageImagePair{Size: size}, nil
		})
		require.NoError(t, err)
		got = append(got, pair)
	}

	assert.Equal(t, []int{0, 2}, calls)
	assert.Same(t, got[0], got[1])
	assert.Same(t, got[0], got[3])
	assert.NotSame(t, got[0], got[2])
	assert.Equal(t, CacheStats{Hits: 2, Misses: 2}, cache.Stats())
	assert.Equal(t, 2, cache.Len())
}

func TestPageCache_ErrorsAreNotCached(t *testing.T) {
	size := models.Rect{Width: 10, Height: 10}
	cache := NewPageCache[int]()
	boom := errors.New("boom")

	_, err := cache.GetOrCreate(size, func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	_, ok := cache.Lookup(size)
	assert.False(t, ok)

	v, err := cache.GetOrCreate(size, func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, ok = cache.Lookup(size)
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}
