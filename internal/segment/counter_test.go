package segment

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlobalCounter_AllocatesDisjointRanges(t *testing.T) {
	c := &GlobalCounter{}

	objBase1, clumpBase1 := c.Allocate(2, 5)
	assert.Equal(t, int32(1), objBase1)
	assert.Equal(t, int32(1), clumpBase1)

	objBase2, clumpBase2 := c.Allocate(3, 1)
	assert.Equal(t, int32(3), objBase2)
	assert.Equal(t, int32(6), clumpBase2)

	numObjects, numClumps := c.Totals()
	assert.Equal(t, 5, numObjects)
	assert.Equal(t, 6, numClumps)
}

func TestGlobalCounter_ConcurrentAllocateNeverOverlaps(t *testing.T) {
	c := &GlobalCounter{}
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := map[int32]bool{}

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			base, _ := c.Allocate(1, 1)
			mu.Lock()
			assert.False(t, seen[base], "object base %d allocated twice", base)
			seen[base] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	numObjects, _ := c.Totals()
	assert.Equal(t, 50, numObjects)
}
