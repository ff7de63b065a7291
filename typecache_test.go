package fastadapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeInstanceCacheRegister(t *testing.T) {
	cache := NewTypeInstanceCache()

	first := newTestItem(1)
	assert.True(t, cache.Register(first))
	assert.False(t, cache.Register(newTestItem(2)), "same type registers once")
	assert.False(t, cache.Register(nil))

	// The first instance seen stays the representative.
	assert.Same(t, Item(first), cache.Get(1))
}

func TestTypeInstanceCacheGetPanicsOnMissing(t *testing.T) {
	cache := NewTypeInstanceCache()
	require.Panics(t, func() { cache.Get(99) })
}

func TestTypeInstanceCacheClear(t *testing.T) {
	cache := NewTypeInstanceCache()
	cache.Register(newTestItem(1))
	cache.Clear()
	require.Panics(t, func() { cache.Get(1) })
	assert.True(t, cache.Register(newTestItem(3)))
}

func TestAdapterRegistersItemTypes(t *testing.T) {
	composer, adapter, _ := newTestSetup(t)
	adapter.Add(newTestViewItem(1))

	// Adding through a registered adapter populates the composer's cache.
	assert.NotNil(t, composer.TypeInstance(5))

	// Items present before registration are picked up at registration time.
	late := NewItemAdapter()
	late.Add(newTestExpandable(2))
	composer.AddAdapter(late)
	assert.NotNil(t, composer.TypeInstance(2))
}
