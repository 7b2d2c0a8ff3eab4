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

import "sync/atomic"

// InfixNode compresses the run of bytes every key below it shares,
// covering depths [start, branchDepth). Its single child is always a
// BranchNode anchored at branchDepth; two adjacent infixes would merge,
// and leaves re-anchor without wrapping.
type InfixNode[V any] struct {
	refs        atomic.Int32
	start       int
	branchDepth int
	infix       []byte // len == branchDepth-start
	child       Node[V]
}

// newInfix takes ownership of the caller's reference to child.
func newInfix[V any](start, branchDepth int, infix []byte, child Node[V]) *InfixNode[V] {
	n := &InfixNode[V]{start: start, branchDepth: branchDepth, infix: infix, child: child}
	n.refs.Store(1)
	return n
}

// Hash returns the child's digest; the infix adds no keys of its own.
func (n *InfixNode[V]) Hash() Hash { return n.child.Hash() }

// LeafCount returns the child's leaf count.
func (n *InfixNode[V]) LeafCount() uint64 { return n.child.LeafCount() }

func (n *InfixNode[V]) rangeStart() int { return n.start }

func (n *InfixNode[V]) byteAt(depth int) byte { return n.infix[depth-n.start] }

func (n *InfixNode[V]) peek(depth int) (byte, bool) {
	if depth < n.branchDepth {
		return n.byteAt(depth), true
	}
	return 0, false
}

func (n *InfixNode[V]) propose(depth int, out *ByteBitset) {
	if depth < n.branchDepth {
		out.UnsetAll()
		out.Set(n.byteAt(depth))
		return
	}
	n.child.propose(depth, out)
}

func (n *InfixNode[V]) get(depth int, b byte) Node[V] {
	if depth < n.branchDepth {
		if n.byteAt(depth) == b {
			return n
		}
		return nil
	}
	return n.child.get(depth, b)
}

func (n *InfixNode[V]) put(l *Layout, depth int, key []byte, value V, owned bool) Node[V] {
	for d := depth; d < n.branchDepth; d++ {
		if n.byteAt(d) != key[d] {
			sibling := newLeaf(d, key, value)
			branch := newBranch[V](l, d, n.initAt(d, key), sibling)
			return anchor(Node[V](branch), depth, key)
		}
	}

	mutable := owned && n.refs.Load() == 1
	newChild := n.child.put(l, n.branchDepth, key, value, mutable)
	if newChild == n.child {
		return n
	}
	if mutable {
		old := n.child
		n.child = newChild
		old.release()
		return n
	}
	return newInfix(n.start, n.branchDepth, n.infix, newChild)
}

func (n *InfixNode[V]) segmentCount(l *Layout, depth int) uint32 {
	if !l.sameSegment(depth, n.branchDepth) {
		return 1
	}
	return n.child.segmentCount(l, n.branchDepth)
}

func (n *InfixNode[V]) initAt(newStart int, key []byte) Node[V] {
	switch {
	case newStart == n.start:
		return n.retain()
	case newStart == n.branchDepth:
		return n.child.retain()
	case newStart > n.start:
		return newInfix(newStart, n.branchDepth, n.infix[newStart-n.start:], n.child.retain())
	default:
		infix := make([]byte, n.branchDepth-newStart)
		copy(infix, key[newStart:n.start])
		copy(infix[n.start-newStart:], n.infix)
		return newInfix(newStart, n.branchDepth, infix, n.child.retain())
	}
}

func (n *InfixNode[V]) retain() Node[V] {
	n.refs.Add(1)
	return n
}

func (n *InfixNode[V]) release() {
	if n.refs.Add(-1) == 0 {
		n.child.release()
	}
}
