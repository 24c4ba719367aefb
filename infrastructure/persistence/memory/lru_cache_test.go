package memory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stellium-backend/domain/insights"
)

func TestLRUBundleCache_GetSet(t *testing.T) {
	// Arrange
	cache := NewLRUBundleCache(4)
	bundle := &insights.InsightBundle{SampleSize: 12}

	// Act
	cache.Set("key-a", bundle)
	got, ok := cache.Get("key-a")

	// Assert
	require.True(t, ok)
	assert.Same(t, bundle, got)
	_, miss := cache.Get("key-b")
	assert.False(t, miss)
}

func TestLRUBundleCache_EvictsLeastRecentlyUsed(t *testing.T) {
	// Arrange
	cache := NewLRUBundleCache(3)
	for i := 0; i < 3; i++ {
		cache.Set(fmt.Sprintf("key-%d", i), &insights.InsightBundle{SampleSize: i})
	}

	// Act - touch key-0 so key-1 becomes the eviction candidate
	_, ok := cache.Get("key-0")
	require.True(t, ok)
	cache.Set("key-3", &insights.InsightBundle{SampleSize: 3})

	// Assert
	_, evicted := cache.Get("key-1")
	assert.False(t, evicted)
	_, kept := cache.Get("key-0")
	assert.True(t, kept)
	_, newest := cache.Get("key-3")
	assert.True(t, newest)
	assert.Equal(t, 3, cache.Len())
}

func TestLRUBundleCache_SetExistingKeyReplaces(t *testing.T) {
	// Arrange
	cache := NewLRUBundleCache(2)
	cache.Set("key-a", &insights.InsightBundle{SampleSize: 1})
	replacement := &insights.InsightBundle{SampleSize: 2}

	// Act
	cache.Set("key-a", replacement)

	// Assert
	got, ok := cache.Get("key-a")
	require.True(t, ok)
	assert.Same(t, replacement, got)
	assert.Equal(t, 1, cache.Len())
}
