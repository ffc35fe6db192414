package segment

import "sync"

// GlobalCounter is the one mutex-guarded piece of shared state in the
// pipeline (spec §5, §9): a process-wide (numObjects, numClumps) pair
// that every detection's resolver draws a contiguous label range from,
// so labels never collide across detections processed concurrently.
type GlobalCounter struct {
	mu         sync.Mutex
	numObjects int32
	numClumps  int32
}

// Allocate reserves nObjects object labels and nClumps clump labels,
// returning the first label of each newly reserved range (labels are
// 1-based, so a fresh counter's first allocation starts at 1).
func (c *GlobalCounter) Allocate(nObjects, nClumps int) (objBase, clumpBase int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	objBase = c.numObjects + 1
	clumpBase = c.numClumps + 1
	c.numObjects += int32(nObjects)
	c.numClumps += int32(nClumps)
	return objBase, clumpBase
}

// Totals returns the final (numObjects, numClumps) counts once every
// detection has been resolved.
func (c *GlobalCounter) Totals() (numObjects, numClumps int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int(c.numObjects), int(c.numClumps)
}
