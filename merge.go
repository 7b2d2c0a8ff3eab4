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

// IsSubsetOf reports whether every key of t is present in o. Shared
// subtrees short-circuit through hash equality.
func (t *Tree[V]) IsSubsetOf(o *Tree[V]) bool {
	if t.root == nil {
		return true
	}
	if o.root == nil {
		return false
	}
	return subsetNodes(t.layout, t.root, o.root, 0)
}

func subsetNodes[V any](l *Layout, a, b Node[V], depth int) bool {
	if a.Hash() == b.Hash() {
		return true
	}
	for d := depth; d < l.keyLen; d++ {
		var pa, pb ByteBitset
		a.propose(d, &pa)
		b.propose(d, &pb)

		diff := pa
		diff.Subtract(&pb)
		if !diff.IsEmpty() {
			return false
		}
		if pa.Count() == 1 {
			k, _ := pa.FindFirstSet()
			a = a.get(d, k)
			b = b.get(d, k)
			continue
		}
		for {
			k, ok := pa.DrainNextAscending()
			if !ok {
				return true
			}
			if !subsetNodes(l, a.get(d, k), b.get(d, k), d+1) {
				return false
			}
		}
	}
	return true
}

// IsIntersecting reports whether t and o share at least one key.
func (t *Tree[V]) IsIntersecting(o *Tree[V]) bool {
	if t.root == nil || o.root == nil {
		return false
	}
	return intersectingNodes(t.layout, t.root, o.root, 0)
}

func intersectingNodes[V any](l *Layout, a, b Node[V], depth int) bool {
	if a.Hash() == b.Hash() {
		return true
	}
	for d := depth; d < l.keyLen; d++ {
		var pa, pb ByteBitset
		a.propose(d, &pa)
		b.propose(d, &pb)

		pa.Intersect(&pb)
		if pa.IsEmpty() {
			return false
		}
		if pa.Count() == 1 {
			k, _ := pa.FindFirstSet()
			a = a.get(d, k)
			b = b.get(d, k)
			continue
		}
		for {
			k, ok := pa.DrainNextAscending()
			if !ok {
				return false
			}
			if intersectingNodes(l, a.get(d, k), b.get(d, k), d+1) {
				return true
			}
		}
	}
	return true
}

// Union builds a new tree holding the union of the key sets of all
// given trees. Inputs are observed as snapshots and never mutated;
// agreeing subtrees are shared, not copied.
func Union[V any](trees ...*Tree[V]) *Tree[V] {
	if len(trees) == 0 {
		panic("tribles: union of no trees")
	}
	l := trees[0].layout
	var roots []Node[V]
	for _, t := range trees {
		if t.root != nil {
			roots = append(roots, t.root)
		}
	}
	res := &Tree[V]{layout: l}
	if len(roots) > 0 {
		prefix := make([]byte, l.keyLen)
		res.root = mergeNodes(l, roots, 0, prefix)
	}
	return res
}

// mergeNodes merges nodes that all cover depth into one node anchored at
// depth. prefix carries the key bytes fixed above and below depth so far
// and is used as scratch for re-anchoring.
func mergeNodes[V any](l *Layout, ns []Node[V], depth int, prefix []byte) Node[V] {
	if len(ns) == 1 {
		return ns[0].initAt(depth, prefix)
	}
	agree := true
	for _, n := range ns[1:] {
		if n.Hash() != ns[0].Hash() {
			agree = false
			break
		}
	}
	if agree {
		return ns[0].initAt(depth, prefix)
	}

	d := depth
	for d < l.keyLen {
		var union, tmp ByteBitset
		for _, n := range ns {
			n.propose(d, &tmp)
			union.Union(&tmp)
		}
		if union.Count() == 1 {
			k, _ := union.FindFirstSet()
			prefix[d] = k
			for i := range ns {
				ns[i] = ns[i].get(d, k)
			}
			d++
			continue
		}

		children := make([]Node[V], 0, union.Count())
		group := make([]Node[V], 0, len(ns))
		for {
			k, ok := union.DrainNextAscending()
			if !ok {
				break
			}
			group = group[:0]
			for _, n := range ns {
				if c := n.get(d, k); c != nil {
					group = append(group, c)
				}
			}
			children = append(children, mergeNodes(l, group, d, prefix))
		}
		br := newBranch(l, d, children...)
		if d == depth {
			return br
		}
		infix := make([]byte, d-depth)
		copy(infix, prefix[depth:d])
		return newInfix(depth, d, infix, Node[V](br))
	}
	// All inputs hold the same single key.
	return ns[0].initAt(depth, prefix)
}

// Intersection builds a new tree holding the keys common to all given
// trees. Derived from the union recursion by restricting each step to
// the intersection of proposals.
func Intersection[V any](trees ...*Tree[V]) *Tree[V] {
	if len(trees) == 0 {
		panic("tribles: intersection of no trees")
	}
	l := trees[0].layout
	res := &Tree[V]{layout: l}
	roots := make([]Node[V], 0, len(trees))
	for _, t := range trees {
		if t.root == nil {
			return res
		}
		roots = append(roots, t.root)
	}
	prefix := make([]byte, l.keyLen)
	res.root = intersectNodes(l, roots, 0, prefix)
	return res
}

func intersectNodes[V any](l *Layout, ns []Node[V], depth int, prefix []byte) Node[V] {
	if len(ns) == 1 {
		return ns[0].initAt(depth, prefix)
	}
	agree := true
	for _, n := range ns[1:] {
		if n.Hash() != ns[0].Hash() {
			agree = false
			break
		}
	}
	if agree {
		return ns[0].initAt(depth, prefix)
	}

	d := depth
	for d < l.keyLen {
		var inter, tmp ByteBitset
		inter.SetAll()
		for _, n := range ns {
			n.propose(d, &tmp)
			inter.Intersect(&tmp)
		}
		if inter.IsEmpty() {
			return nil
		}
		if inter.Count() == 1 {
			k, _ := inter.FindFirstSet()
			prefix[d] = k
			for i := range ns {
				ns[i] = ns[i].get(d, k)
			}
			d++
			continue
		}

		children := make([]Node[V], 0, inter.Count())
		group := make([]Node[V], 0, len(ns))
		for {
			k, ok := inter.DrainNextAscending()
			if !ok {
				break
			}
			group = group[:0]
			for _, n := range ns {
				group = append(group, n.get(d, k))
			}
			if c := intersectNodes(l, group, d, prefix); c != nil {
				children = append(children, c)
			}
		}
		switch len(children) {
		case 0:
			return nil
		case 1:
			return anchor(children[0], depth, prefix)
		default:
			br := newBranch(l, d, children...)
			if d == depth {
				return br
			}
			infix := make([]byte, d-depth)
			copy(infix, prefix[depth:d])
			return newInfix(depth, d, infix, Node[V](br))
		}
	}
	return ns[0].initAt(depth, prefix)
}
