package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("display.theme", "dark"))
	require.NoError(t, store.Set("display.theme", "light"))

	val, ok := store.Get("display.theme")
	assert.True(t, ok)
	assert.Equal(t, "light", val)
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store := NewConfigStore()

	val, ok := store.Get("history.limit")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("display.theme", "mono"))
	require.NoError(t, store.Set("history.enabled", true))
	require.NoError(t, store.Set("history.limit", 50))
	require.NoError(t, store.Set("limit.int64", int64(7)))
	require.NoError(t, store.Set("limit.float", float64(12)))

	assert.Equal(t, "mono", store.GetString("display.theme"))
	assert.True(t, store.GetBool("history.enabled"))
	assert.Equal(t, 50, store.GetInt("history.limit"))
	assert.Equal(t, 7, store.GetInt("limit.int64"))
	assert.Equal(t, 12, store.GetInt("limit.float"))
}

func TestConfigStore_TypedGetters_WrongType(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("history.limit", "many"))
	require.NoError(t, store.Set("history.enabled", "yes"))
	require.NoError(t, store.Set("display.theme", 3))

	assert.Equal(t, 0, store.GetInt("history.limit"))
	assert.False(t, store.GetBool("history.enabled"))
	assert.Equal(t, "", store.GetString("display.theme"))
}

func TestConfigStore_TypedGetters_Missing(t *testing.T) {
	store := NewConfigStore()

	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_SaveLoad_NoOp(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("history.limit", 10))

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())
	assert.Equal(t, 10, store.GetInt("history.limit"))
}

func TestConfigStore_Watch_NotifiesOnSet(t *testing.T) {
	store := NewConfigStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx, func() { changed <- struct{}{} })
	}()

	// Wait for the watcher to register.
	require.Eventually(t, func() bool {
		store.mu.RLock()
		defer store.mu.RUnlock()
		return len(store.watchers) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, store.Set("display.theme", "light"))

	select {
	case <-changed:
	case <-time.After(time.Second):
		t.Fatal("watcher was not notified")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	store.mu.RLock()
	defer store.mu.RUnlock()
	assert.Empty(t, store.watchers)
}

func TestConfigStore_Set_WithoutWatchers(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Set("display.theme", "dark"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("history.limit", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("history.limit")
		}()
	}
	wg.Wait()

	_, ok := store.Get("history.limit")
	assert.True(t, ok)
}
