package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bmi-cli/internal/core/ports/driven"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("calculator.target_bmi", 21.5))
	require.NoError(t, store.Set("calculator.target_bmi", 23.0))

	val, ok := store.Get("calculator.target_bmi")
	assert.True(t, ok)
	assert.Equal(t, 23.0, val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("display.locale", "ja")
	_ = store.Set("history.display_limit", 10)

	assert.Equal(t, "ja", store.GetString("display.locale"))
	assert.Empty(t, store.GetString("history.display_limit"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"int", 12, 12},
		{"int64", int64(20), 20},
		{"float64 truncates", 7.9, 7},
		{"string", "10", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			_ = store.Set("k", tt.value)
			assert.Equal(t, tt.want, store.GetInt("k"))
		})
	}

	assert.Zero(t, NewConfigStore().GetInt("missing"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
	}{
		{"float64", 22.5, 22.5},
		{"float32", float32(20.5), 20.5},
		{"int widens", 22, 22},
		{"int64 widens", int64(19), 19},
		{"bool", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			_ = store.Set("k", tt.value)
			assert.InDelta(t, tt.want, store.GetFloat("k"), 1e-9)
		})
	}

	assert.Zero(t, NewConfigStore().GetFloat("missing"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("on", true)
	_ = store.Set("text", "true")

	assert.True(t, store.GetBool("on"))
	assert.False(t, store.GetBool("text"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_PersistenceNoOps(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("k", "v")

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, "v", store.GetString("k"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_InstancesAreIsolated(t *testing.T) {
	a := NewConfigStore()
	b := NewConfigStore()
	_ = a.Set("k", "a")

	assert.Equal(t, "a", a.GetString("k"))
	_, ok := b.Get("k")
	assert.False(t, ok)
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set(fmt.Sprintf("key.%d", n), n)
		}(i)
		go func(n int) {
			defer wg.Done()
			_ = store.GetInt(fmt.Sprintf("key.%d", n))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		assert.Equal(t, i, store.GetInt(fmt.Sprintf("key.%d", i)))
	}
}

func TestConfigStore_ImplementsInterface(t *testing.T) {
	var _ driven.ConfigStore = NewConfigStore()
}
