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

// NodeItem is one step of a depth-first node walk. Prefix aliases the
// iterator's scratch buffer and is only valid until the next call to
// Next; it covers the bytes fixed up to and including the node's own
// infix (the full key for a leaf).
type NodeItem[V any] struct {
	Start  int
	Prefix []byte
	Node   Node[V]
}

type iterFrame[V any] struct {
	node    Node[V]
	rem     ByteBitset // unvisited children of a branch
	depth   int        // depth at which children of this frame hang
	yielded bool
}

// NodeIterator walks every node reachable from the root in depth-first
// order using an explicit stack of branch states.
type NodeIterator[V any] struct {
	layout *Layout
	prefix []byte
	stack  []iterFrame[V]
	item   NodeItem[V]
}

// Nodes returns an iterator over all nodes of the tree.
func (t *Tree[V]) Nodes() *NodeIterator[V] {
	it := &NodeIterator[V]{
		layout: t.layout,
		prefix: make([]byte, t.layout.keyLen),
	}
	if t.root != nil {
		it.push(t.root)
	}
	return it
}

func (it *NodeIterator[V]) push(n Node[V]) {
	f := iterFrame[V]{node: n}
	switch v := n.(type) {
	case *BranchNode[V]:
		f.rem = v.childSet
		f.depth = v.branchDepth
	case *InfixNode[V]:
		f.depth = v.branchDepth
	}
	it.stack = append(it.stack, f)
}

// Next advances to the next node, reporting false when the walk is done.
func (it *NodeIterator[V]) Next() bool {
	for len(it.stack) > 0 {
		f := &it.stack[len(it.stack)-1]
		if !f.yielded {
			f.yielded = true
			it.item = it.visit(f.node)
			return true
		}
		switch v := f.node.(type) {
		case *LeafNode[V]:
			it.stack = it.stack[:len(it.stack)-1]
		case *InfixNode[V]:
			it.stack = it.stack[:len(it.stack)-1]
			it.push(v.child)
		case *BranchNode[V]:
			k, ok := f.rem.DrainNextAscending()
			if !ok {
				it.stack = it.stack[:len(it.stack)-1]
				continue
			}
			it.prefix[f.depth] = k
			it.push(v.childAt(k))
		}
	}
	return false
}

// visit records a node's own bytes into the prefix buffer and builds its
// item.
func (it *NodeIterator[V]) visit(n Node[V]) NodeItem[V] {
	switch v := n.(type) {
	case *LeafNode[V]:
		copy(it.prefix[v.start:], v.key[v.start:])
		return NodeItem[V]{Start: v.start, Prefix: it.prefix[:it.layout.keyLen], Node: n}
	case *InfixNode[V]:
		copy(it.prefix[v.start:], v.infix)
		return NodeItem[V]{Start: v.start, Prefix: it.prefix[:v.branchDepth], Node: n}
	case *BranchNode[V]:
		return NodeItem[V]{Start: v.branchDepth, Prefix: it.prefix[:v.branchDepth], Node: n}
	default:
		panic("tribles: unknown node variant")
	}
}

// Item returns the node reached by the last call to Next.
func (it *NodeIterator[V]) Item() NodeItem[V] { return it.item }
