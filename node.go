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

import "fmt"

// Layout fixes the key length of a tree and its partition into segments.
// Segment boundaries drive the per-branch segment counts used as
// selectivity estimates by join engines. One Layout is shared by every
// node of a tree, and by every tree it is ever merged with.
type Layout struct {
	keyLen   int
	segments []int
	segOf    []int // segment index per depth, len keyLen+1
}

// NewLayout builds a layout from segment sizes. The key length is their
// sum.
func NewLayout(segments ...int) *Layout {
	if len(segments) == 0 {
		panic("tribles: layout needs at least one segment")
	}
	l := &Layout{segments: append([]int(nil), segments...)}
	for i, sz := range segments {
		if sz <= 0 {
			panic(fmt.Sprintf("tribles: invalid segment size %d", sz))
		}
		for j := 0; j < sz; j++ {
			l.segOf = append(l.segOf, i)
		}
		l.keyLen += sz
	}
	// depth == keyLen belongs to the last segment
	l.segOf = append(l.segOf, len(segments)-1)
	return l
}

// KeyLen returns the key length in bytes.
func (l *Layout) KeyLen() int { return l.keyLen }

// Segments returns the segment sizes.
func (l *Layout) Segments() []int { return append([]int(nil), l.segments...) }

func (l *Layout) segment(depth int) int { return l.segOf[depth] }

// sameSegment reports whether two depths fall into the same key segment.
func (l *Layout) sameSegment(a, b int) bool { return l.segOf[a] == l.segOf[b] }

// Node is one variant of the trie's tagged node union: a LeafNode holding
// one key, an InfixNode compressing a run of shared bytes, or a BranchNode
// discriminating children through cuckoo-hashed buckets. A Node value is
// two words, which is what lets branch buckets store children inline.
type Node[V any] interface {
	// Hash returns the commutative structural digest of the subtree.
	Hash() Hash

	// LeafCount returns the number of distinct keys in the subtree.
	LeafCount() uint64

	// rangeStart is the first depth covered by this node.
	rangeStart() int

	// peek returns the byte this node fixes at depth, or ok == false
	// where the node branches.
	peek(depth int) (byte, bool)

	// propose replaces out with the candidate bytes at depth.
	propose(depth int, out *ByteBitset)

	// get returns the node reached by fixing byte b at depth, or nil.
	get(depth int, b byte) Node[V]

	// put inserts key/value below this node, comparing from depth on.
	// It returns the receiver when nothing changed, a replacement node
	// otherwise. owned reports that every node above this one on the
	// path from the root is singly referenced; a node mutates itself in
	// place only when owned is set and its own count is also one.
	put(l *Layout, depth int, key []byte, value V, owned bool) Node[V]

	// segmentCount estimates the number of distinct segment prefixes
	// below this node, as seen from depth. Outside the segment of the
	// node's branch depth it degenerates to 1.
	segmentCount(l *Layout, depth int) uint32

	// initAt re-anchors the node at newStart, sharing structure. Bytes
	// in [newStart, rangeStart) are supplied from key; key may be nil
	// when newStart >= rangeStart.
	initAt(newStart int, key []byte) Node[V]

	// retain acquires a reference for the caller.
	retain() Node[V]

	// release drops the caller's reference. Memory reclamation is the
	// collector's job; the count only steers copy-on-write.
	release()
}

// anchor re-anchors a node the caller owns, transferring the reference
// to the result.
func anchor[V any](n Node[V], newStart int, key []byte) Node[V] {
	a := n.initAt(newStart, key)
	n.release()
	return a
}
