// Package cluster maintains the mutable spike-to-cluster assignment of a
// sorting session. Extraction treats it as a read-only view and re-resolves
// membership on every call; splits and merges are applied by the curation
// layer through Assign.
//
// Membership is held as one roaring bitmap per cluster, which keeps unions
// across clusters cheap even for millions of spikes. Writers must be
// serialized relative to each other by the caller (a UI action queue);
// the view itself guards reads with an RWMutex.
package cluster

import (
	"sort"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/neurotap/spikeview/model"
)

// Clustering is the current spike-to-cluster assignment.
type Clustering struct {
	mu          sync.RWMutex
	assignments []model.ClusterID
	members     map[model.ClusterID]*roaring.Bitmap
	groups      map[model.ClusterID]string
	order       []model.ClusterID
}

// NewFromAssignments builds a Clustering from a per-spike cluster column.
func NewFromAssignments(assignments []model.ClusterID) *Clustering {
	c := &Clustering{
		assignments: make([]model.ClusterID, len(assignments)),
		members:     make(map[model.ClusterID]*roaring.Bitmap),
		groups:      make(map[model.ClusterID]string),
	}
	copy(c.assignments, assignments)
	for i, id := range assignments {
		bm, ok := c.members[id]
		if !ok {
			bm = roaring.New()
			c.members[id] = bm
		}
		bm.Add(uint32(i))
	}
	c.rebuildOrder()
	return c
}

// caller holds the lock.
func (c *Clustering) rebuildOrder() {
	c.order = c.order[:0]
	for id := range c.members {
		c.order = append(c.order, id)
	}
	sort.Slice(c.order, func(i, j int) bool { return c.order[i] < c.order[j] })
}

// ClusterIDs returns the current cluster ids in ascending order.
func (c *Clustering) ClusterIDs() []model.ClusterID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.ClusterID, len(c.order))
	copy(out, c.order)
	return out
}

// Spikes returns the union of the given clusters' members, sorted by spike
// index. Unknown clusters contribute nothing.
func (c *Clustering) Spikes(ids ...model.ClusterID) []model.SpikeID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	bitmaps := make([]*roaring.Bitmap, 0, len(ids))
	for _, id := range ids {
		if bm, ok := c.members[id]; ok {
			bitmaps = append(bitmaps, bm)
		}
	}
	if len(bitmaps) == 0 {
		return nil
	}
	union := roaring.FastOr(bitmaps...)
	out := make([]model.SpikeID, 0, union.GetCardinality())
	it := union.Iterator()
	for it.HasNext() {
		out = append(out, model.SpikeID(it.Next()))
	}
	return out
}

// Count returns the number of spikes in a cluster.
func (c *Clustering) Count(id model.ClusterID) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	bm, ok := c.members[id]
	if !ok {
		return 0
	}
	return int(bm.GetCardinality())
}

// ClusterOf returns the current cluster of a spike.
func (c *Clustering) ClusterOf(id model.SpikeID) model.ClusterID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.assignments[id]
}

// Group returns a cluster's curation label ("good", "mua", "noise", "").
func (c *Clustering) Group(id model.ClusterID) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.groups[id]
}

// SetGroup records a cluster's curation label.
func (c *Clustering) SetGroup(id model.ClusterID, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.groups[id] = label
}

// Groups returns a copy of all curation labels.
func (c *Clustering) Groups() map[model.ClusterID]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[model.ClusterID]string, len(c.groups))
	for id, label := range c.groups {
		out[id] = label
	}
	return out
}

// NextClusterID returns an id not yet in use, for minting merge targets.
func (c *Clustering) NextClusterID() model.ClusterID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.order) == 0 {
		return 0
	}
	return c.order[len(c.order)-1] + 1
}

// Assign moves the given spikes to cluster `to`, creating it if needed and
// dropping clusters that become empty. This is the single mutation entry
// point used for splits and merges.
func (c *Clustering) Assign(spikes []model.SpikeID, to model.ClusterID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dst, ok := c.members[to]
	if !ok {
		dst = roaring.New()
		c.members[to] = dst
	}
	for _, s := range spikes {
		from := c.assignments[s]
		if from == to {
			continue
		}
		if src, ok := c.members[from]; ok {
			src.Remove(uint32(s))
			if src.IsEmpty() {
				delete(c.members, from)
				delete(c.groups, from)
			}
		}
		dst.Add(uint32(s))
		c.assignments[s] = to
	}
	if dst.IsEmpty() {
		delete(c.members, to)
	}
	c.rebuildOrder()
}
