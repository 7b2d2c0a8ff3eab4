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

import "errors"

var (
	errBadKeyLength = errors.New("key length does not match the tree layout")
	errNoHashSecret = errors.New("hash secret not initialized")
)

// Tree is the root handle of a PACT. Mutation is single-writer; frozen
// snapshots obtained via Branch share structure and may be read from any
// goroutine.
type Tree[V any] struct {
	layout *Layout
	root   Node[V]
}

// NewTree returns an empty tree over the given layout.
func NewTree[V any](l *Layout) *Tree[V] {
	return &Tree[V]{layout: l}
}

// Layout returns the tree's key layout.
func (t *Tree[V]) Layout() *Layout { return t.layout }

// Put inserts key with value. Re-inserting an existing key overwrites
// the value and leaves the structural hash unchanged.
func (t *Tree[V]) Put(key []byte, value V) error {
	if len(key) != t.layout.keyLen {
		return errBadKeyLength
	}
	if !hashSecretReady() {
		return errNoHashSecret
	}
	if t.root == nil {
		t.root = newLeaf(0, key, value)
		return nil
	}
	newRoot := t.root.put(t.layout, 0, key, value, true)
	if newRoot != t.root {
		old := t.root
		t.root = newRoot
		old.release()
	}
	return nil
}

// Get returns the value stored under key.
func (t *Tree[V]) Get(key []byte) (V, bool) {
	var zero V
	if t.root == nil || len(key) != t.layout.keyLen {
		return zero, false
	}
	n := t.root
	for d := 0; d < t.layout.keyLen; d++ {
		n = n.get(d, key[d])
		if n == nil {
			return zero, false
		}
	}
	return n.(*LeafNode[V]).value, true
}

// Has reports whether key is present.
func (t *Tree[V]) Has(key []byte) bool {
	_, ok := t.Get(key)
	return ok
}

// Count returns the number of distinct keys.
func (t *Tree[V]) Count() uint64 {
	if t.root == nil {
		return 0
	}
	return t.root.LeafCount()
}

// IsEmpty reports whether the tree holds no keys.
func (t *Tree[V]) IsEmpty() bool { return t.root == nil }

// Hash returns the structural digest of the whole tree; the zero hash
// for an empty tree.
func (t *Tree[V]) Hash() Hash {
	if t.root == nil {
		return Hash{}
	}
	return t.root.Hash()
}

// Equal reports whether both trees hold the same key set, in constant
// time via the structural hash.
func (t *Tree[V]) Equal(o *Tree[V]) bool {
	return t.Hash() == o.Hash()
}

// Branch forks an independent snapshot sharing the whole structure.
// Later writes to either tree leave the other untouched.
func (t *Tree[V]) Branch() *Tree[V] {
	b := &Tree[V]{layout: t.layout}
	if t.root != nil {
		b.root = t.root.retain()
	}
	return b
}

// Root returns the root node, nil when empty. Read-only access for
// inspection and traversal.
func (t *Tree[V]) Root() Node[V] { return t.root }

// Cursor returns a byte-level traversal cursor positioned at the root.
func (t *Tree[V]) Cursor() *Cursor[V] {
	c := &Cursor[V]{
		layout: t.layout,
		path:   make([]Node[V], t.layout.keyLen+1),
	}
	c.path[0] = t.root
	return c
}
