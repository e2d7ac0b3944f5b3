package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySetGet(t *testing.T) {
	c := NewMemory()

	user := &auth.User{ID: 7, FacebookID: "F1", Email: "a@x.com", FullName: "Ann"}
	c.Set("T1", user)

	got, ok := c.Get("T1")
	require.True(t, ok)
	assert.Same(t, user, got)
}

func TestMemoryMissingToken(t *testing.T) {
	c := NewMemory()

	got, ok := c.Get("unknown")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestMemoryExactMatchKeys(t *testing.T) {
	c := NewMemory()
	c.Set("T1", &auth.User{ID: 1, FacebookID: "F1"})

	// No normalization: near-miss keys are different tokens.
	_, ok := c.Get("t1")
	assert.False(t, ok)
	_, ok = c.Get("T1 ")
	assert.False(t, ok)
}

func TestMemoryDelete(t *testing.T) {
	c := NewMemory()
	c.Set("T1", &auth.User{ID: 1, FacebookID: "F1"})

	c.Delete("T1")

	_, ok := c.Get("T1")
	assert.False(t, ok)

	// Deleting an absent key is a no-op.
	c.Delete("T1")
}

func TestMemoryOverwrite(t *testing.T) {
	c := NewMemory()
	c.Set("T1", &auth.User{ID: 1, FacebookID: "F1"})
	c.Set("T1", &auth.User{ID: 2, FacebookID: "F2"})

	got, ok := c.Get("T1")
	require.True(t, ok)
	assert.Equal(t, int64(2), got.ID)
}

func TestMemoryConcurrentAccess(t *testing.T) {
	c := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			token := fmt.Sprintf("T%d", n)
			for j := 0; j < 100; j++ {
				c.Set(token, &auth.User{ID: int64(n), FacebookID: token})
				c.Get(token)
				c.Delete(token)
			}
		}(i)
	}
	wg.Wait()
}
