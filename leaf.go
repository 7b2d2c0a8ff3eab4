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

import "bytes"

// LeafNode is a terminal node holding one key and its value. Leaves are
// immutable once built: value overwrites swap in a fresh leaf with the
// same key hash, so leaves can be shared between trees without a
// reference count.
type LeafNode[V any] struct {
	key   []byte
	value V
	start int
	hash  Hash
}

func newLeaf[V any](start int, key []byte, value V) *LeafNode[V] {
	return &LeafNode[V]{
		key:   bytes.Clone(key),
		value: value,
		start: start,
		hash:  leafHash(key),
	}
}

// Key returns the full key stored in the leaf.
func (n *LeafNode[V]) Key() []byte { return n.key }

// Value returns the stored value.
func (n *LeafNode[V]) Value() V { return n.value }

// Hash returns the keyed digest of the leaf's key.
func (n *LeafNode[V]) Hash() Hash { return n.hash }

// LeafCount returns 1.
func (n *LeafNode[V]) LeafCount() uint64 { return 1 }

func (n *LeafNode[V]) rangeStart() int { return n.start }

func (n *LeafNode[V]) peek(depth int) (byte, bool) {
	if depth >= len(n.key) {
		return 0, false
	}
	return n.key[depth], true
}

func (n *LeafNode[V]) propose(depth int, out *ByteBitset) {
	out.UnsetAll()
	if depth < len(n.key) {
		out.Set(n.key[depth])
	}
}

func (n *LeafNode[V]) get(depth int, b byte) Node[V] {
	if depth < len(n.key) && n.key[depth] == b {
		return n
	}
	return nil
}

func (n *LeafNode[V]) put(l *Layout, depth int, key []byte, value V, owned bool) Node[V] {
	for d := depth; d < l.keyLen; d++ {
		if n.key[d] != key[d] {
			sibling := newLeaf(d, key, value)
			branch := newBranch[V](l, d, n.initAt(d, nil), sibling)
			return anchor(Node[V](branch), depth, key)
		}
	}
	// Same key: overwrite the value, keep the hash.
	return &LeafNode[V]{key: n.key, value: value, start: n.start, hash: n.hash}
}

func (n *LeafNode[V]) segmentCount(*Layout, int) uint32 { return 1 }

func (n *LeafNode[V]) initAt(newStart int, _ []byte) Node[V] {
	if newStart == n.start {
		return n
	}
	return &LeafNode[V]{key: n.key, value: n.value, start: newStart, hash: n.hash}
}

func (n *LeafNode[V]) retain() Node[V] { return n }

func (n *LeafNode[V]) release() {}
