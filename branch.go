// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package tribles

import (
	"math/bits"
	"sync/atomic"
)

const (
	// bucketSlots is the number of child slots per bucket. Each slot
	// pairs the child's byte key with its two-word node value, so four
	// slots take 96 bytes, more than one 64-byte cache line.
	bucketSlots = 4

	// maxBuckets bounds structural growth. 64 buckets of 4 slots hold
	// all 256 children; beyond that only displacement resolves
	// collisions.
	maxBuckets = 64

	// maxCuckooRetries is the displacement budget before a growable
	// branch gives up and doubles its bucket count.
	maxCuckooRetries = 4
)

// displaceRand is a process-wide rotating register diversifying victim
// selection during cuckoo displacement. No correctness property depends
// on its value.
var displaceRand atomic.Uint32

func nextDisplaceByte() byte {
	return byte(displaceRand.Add(0x9e3779b9) >> 24)
}

type slotEntry[V any] struct {
	key  byte
	node Node[V]
}

// bucket is one cuckoo hash table row: up to four children keyed by the
// byte they were indexed under.
type bucket[V any] struct {
	slots [bucketSlots]slotEntry[V]
}

// put places entry in the bucket: overwriting the same key, filling a
// free slot, or reclaiming a slot whose key no longer hashes to this
// bucket (left behind by growth duplication). It reports failure when
// the bucket is full of correctly placed slots.
func (b *bucket[V]) put(owner *BranchNode[V], selfIdx int, entry slotEntry[V]) bool {
	for i := range b.slots {
		s := &b.slots[i]
		if s.node != nil && s.key == entry.key {
			*s = entry
			return true
		}
	}
	for i := range b.slots {
		if b.slots[i].node == nil {
			b.slots[i] = entry
			return true
		}
	}
	for i := range b.slots {
		s := &b.slots[i]
		if owner.bucketIndex(s.key) != selfIdx {
			*s = entry
			return true
		}
	}
	return false
}

func (b *bucket[V]) get(k byte) Node[V] {
	for i := range b.slots {
		s := &b.slots[i]
		if s.node != nil && s.key == k {
			return s.node
		}
	}
	return nil
}

// BranchNode discriminates up to 256 children at its branch depth. The
// children live in cuckoo-hashed buckets addressed by one of two hash
// functions per key; childSet tracks which byte keys exist and
// randHashUsed tracks which hash function currently places each of them.
type BranchNode[V any] struct {
	refs         atomic.Int32
	branchDepth  int
	leafCnt      uint64
	segCnt       uint32
	hash         Hash
	childSet     ByteBitset
	randHashUsed ByteBitset
	buckets      []bucket[V]
}

// newBranch builds a branch at depth from children anchored there,
// taking ownership of the caller's references.
func newBranch[V any](l *Layout, depth int, children ...Node[V]) *BranchNode[V] {
	n := &BranchNode[V]{branchDepth: depth, buckets: make([]bucket[V], 1)}
	n.refs.Store(1)
	for _, c := range children {
		k, ok := c.peek(depth)
		if !ok {
			panic("tribles: branch child fixes no byte at branch depth")
		}
		n.hash = n.hash.Combine(c.Hash())
		n.leafCnt += c.LeafCount()
		n.segCnt += c.segmentCount(l, depth)
		n.insert(slotEntry[V]{key: k, node: c})
	}
	return n
}

// Hash returns the XOR of the leaf hashes below the branch.
func (n *BranchNode[V]) Hash() Hash { return n.hash }

// LeafCount returns the number of keys below the branch.
func (n *BranchNode[V]) LeafCount() uint64 { return n.leafCnt }

// BucketCount returns the current number of buckets.
func (n *BranchNode[V]) BucketCount() int { return len(n.buckets) }

func (n *BranchNode[V]) rangeStart() int { return n.branchDepth }

func (n *BranchNode[V]) peek(int) (byte, bool) { return 0, false }

func (n *BranchNode[V]) propose(depth int, out *ByteBitset) {
	*out = n.childSet
}

func (n *BranchNode[V]) get(depth int, b byte) Node[V] {
	if !n.childSet.IsSet(b) {
		return nil
	}
	return n.childAt(b)
}

// bucketIndex returns the bucket currently addressing k, compressing the
// hash selected by randHashUsed to the bucket count.
func (n *BranchNode[V]) bucketIndex(k byte) int {
	h := bits.Reverse8(k)
	if n.randHashUsed.IsSet(k) {
		h = randTbl[k]
	}
	return int(h) & (len(n.buckets) - 1)
}

func (n *BranchNode[V]) childAt(k byte) Node[V] {
	return n.buckets[n.bucketIndex(k)].get(k)
}

func (n *BranchNode[V]) replaceChild(k byte, c Node[V]) {
	bkt := &n.buckets[n.bucketIndex(k)]
	for i := range bkt.slots {
		s := &bkt.slots[i]
		if s.node != nil && s.key == k {
			s.node = c
			return
		}
	}
	panic("tribles: replaceChild on missing key")
}

func (n *BranchNode[V]) put(l *Layout, depth int, key []byte, value V, owned bool) Node[V] {
	k := key[n.branchDepth]
	mutable := owned && n.refs.Load() == 1

	if n.childSet.IsSet(k) {
		old := n.childAt(k)
		// The child may be mutated in place, so its contribution has
		// to be captured before the recursive put.
		oldHash := old.Hash()
		oldLeaves := old.LeafCount()
		oldSegs := old.segmentCount(l, n.branchDepth)
		newChild := old.put(l, n.branchDepth, key, value, mutable)
		if newChild == old && newChild.Hash() == oldHash {
			return n
		}
		m := n
		if !mutable {
			m = n.copy()
		}
		m.hash = m.hash.Combine(oldHash).Combine(newChild.Hash())
		m.leafCnt += newChild.LeafCount() - oldLeaves
		m.segCnt += newChild.segmentCount(l, m.branchDepth) - oldSegs
		if newChild != old {
			m.replaceChild(k, newChild)
			old.release()
		}
		return m
	}

	child := newLeaf(n.branchDepth, key, value)
	m := n
	if !mutable {
		m = n.copy()
	}
	m.hash = m.hash.Combine(child.Hash())
	m.leafCnt++
	m.segCnt += child.segmentCount(l, m.branchDepth)
	m.insert(slotEntry[V]{key: k, node: child})
	return m
}

// insert places a new child, growing the bucket array until the cuckoo
// protocol finds room. Only called on mutable nodes.
func (n *BranchNode[V]) insert(entry slotEntry[V]) {
	for {
		displaced, ok := n.cuckooPut(entry)
		if ok {
			return
		}
		n.grow()
		entry = displaced
	}
}

// cuckooPut runs the displacement loop for one entry. It reports failure
// with the entry left homeless, which the caller resolves by growing.
func (n *BranchNode[V]) cuckooPut(entry slotEntry[V]) (slotEntry[V], bool) {
	n.childSet.Set(entry.key)
	n.randHashUsed.Unset(entry.key)
	growable := len(n.buckets) < maxBuckets

	for retry := 0; ; retry++ {
		idx := n.bucketIndex(entry.key)
		if n.buckets[idx].put(n, idx, entry) {
			return slotEntry[V]{}, true
		}
		if len(n.buckets) == 1 {
			return entry, false
		}
		if !growable {
			// A full-size branch displaces a second-hash slot and
			// retries it under the first hash. The number of
			// second-hash placements strictly decreases, so this
			// terminates without growth.
			bkt := &n.buckets[idx]
			for i := range bkt.slots {
				s := &bkt.slots[i]
				if s.node != nil && n.randHashUsed.IsSet(s.key) {
					entry, *s = *s, entry
					n.randHashUsed.Unset(entry.key)
					break
				}
			}
			continue
		}
		if retry+1 >= maxCuckooRetries {
			return entry, false
		}
		bkt := &n.buckets[idx]
		victim := &bkt.slots[int(nextDisplaceByte())%bucketSlots]
		entry, *victim = *victim, entry
		n.randHashUsed.SetValue(entry.key, !n.randHashUsed.IsSet(entry.key))
	}
}

// grow doubles the bucket count. The old buckets are duplicated into the
// upper half so every key is present under both candidate indices; the
// now-outdated duplicates are reclaimed lazily by later puts.
func (n *BranchNode[V]) grow() {
	old := n.buckets
	n.buckets = make([]bucket[V], 2*len(old))
	copy(n.buckets, old)
	copy(n.buckets[len(old):], old)
}

func (n *BranchNode[V]) segmentCount(l *Layout, depth int) uint32 {
	if !l.sameSegment(depth, n.branchDepth) {
		return 1
	}
	return n.segCnt
}

func (n *BranchNode[V]) initAt(newStart int, key []byte) Node[V] {
	if newStart == n.branchDepth {
		return n.retain()
	}
	infix := make([]byte, n.branchDepth-newStart)
	copy(infix, key[newStart:n.branchDepth])
	return newInfix(newStart, n.branchDepth, infix, n.retain())
}

func (n *BranchNode[V]) copy() *BranchNode[V] {
	m := &BranchNode[V]{
		branchDepth:  n.branchDepth,
		leafCnt:      n.leafCnt,
		segCnt:       n.segCnt,
		hash:         n.hash,
		childSet:     n.childSet,
		randHashUsed: n.randHashUsed,
		buckets:      make([]bucket[V], len(n.buckets)),
	}
	m.refs.Store(1)
	copy(m.buckets, n.buckets)
	cs := n.childSet
	for {
		k, ok := cs.DrainNextAscending()
		if !ok {
			break
		}
		n.childAt(k).retain()
	}
	return m
}

func (n *BranchNode[V]) retain() Node[V] {
	n.refs.Add(1)
	return n
}

func (n *BranchNode[V]) release() {
	if n.refs.Add(-1) == 0 {
		cs := n.childSet
		for {
			k, ok := cs.DrainNextAscending()
			if !ok {
				break
			}
			n.childAt(k).release()
		}
	}
}
