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

import "encoding/binary"

// Cursor walks a frozen tree one byte at a time. At every depth it can
// report the byte the tree fixes there (peek), the candidate byte set
// (propose), and descend (push) or retreat (pop). Pushing a byte that
// was not proposed is a caller bug and panics.
type Cursor[V any] struct {
	layout *Layout
	depth  int
	path   []Node[V] // path[d] covers depth d once bytes [0,d) are fixed
}

// Depth returns the number of bytes fixed so far.
func (c *Cursor[V]) Depth() int { return c.depth }

// Peek returns the byte fixed at the current depth, or ok == false when
// the tree branches here or the key is exhausted.
func (c *Cursor[V]) Peek() (byte, bool) {
	n := c.path[c.depth]
	if n == nil || c.depth >= c.layout.keyLen {
		return 0, false
	}
	return n.peek(c.depth)
}

// Propose replaces out with the candidate bytes at the current depth.
func (c *Cursor[V]) Propose(out *ByteBitset) {
	out.UnsetAll()
	n := c.path[c.depth]
	if n == nil || c.depth >= c.layout.keyLen {
		return
	}
	n.propose(c.depth, out)
}

// Push fixes b at the current depth and descends.
func (c *Cursor[V]) Push(b byte) {
	if c.depth >= c.layout.keyLen {
		panic("tribles: cursor pushed past the key length")
	}
	n := c.path[c.depth]
	if n == nil {
		panic("tribles: cursor pushed into an empty tree")
	}
	next := n.get(c.depth, b)
	if next == nil {
		panic("tribles: cursor pushed a byte that was not proposed")
	}
	c.depth++
	c.path[c.depth] = next
}

// Pop retracts the most recently pushed byte.
func (c *Cursor[V]) Pop() {
	if c.depth == 0 {
		panic("tribles: cursor popped below the root")
	}
	c.depth--
}

// SegmentCount returns the selectivity estimate of the current subtree:
// the number of distinct segment prefixes below the current position.
func (c *Cursor[V]) SegmentCount() uint32 {
	n := c.path[c.depth]
	if n == nil {
		return 0
	}
	d := c.depth
	if d >= c.layout.keyLen {
		d = c.layout.keyLen
	}
	return n.segmentCount(c.layout, d)
}

// SubtreeHash returns the structural digest of the current subtree, used
// as a cheap selectivity sample.
func (c *Cursor[V]) SubtreeHash() Hash {
	n := c.path[c.depth]
	if n == nil {
		return Hash{}
	}
	return n.Hash()
}

// Leaf returns the leaf reached after pushing all key bytes.
func (c *Cursor[V]) Leaf() *LeafNode[V] {
	if l, ok := c.path[c.depth].(*LeafNode[V]); ok {
		return l
	}
	return nil
}

// PaddedCursor wraps a Cursor so that every key segment appears to have
// the same byte length, by prepending zero bytes inside the shorter
// segments. Padding depths fix the byte 0 and do not move the wrapped
// cursor.
type PaddedCursor[V any] struct {
	cursor  *Cursor[V]
	padding ByteBitset // padded depths that are pure padding
	depth   int        // position in padded coordinates
	length  int        // padded key length
}

// NewPaddedCursor pads every segment of the cursor's layout to width
// bytes. Each segment must be at most width bytes long.
func NewPaddedCursor[V any](c *Cursor[V], width int) *PaddedCursor[V] {
	p := &PaddedCursor[V]{cursor: c}
	if width*len(c.layout.segments) > 256 {
		panic("tribles: padded key exceeds 256 bytes")
	}
	depth := 0
	for _, sz := range c.layout.segments {
		if sz > width {
			panic("tribles: segment exceeds the padded width")
		}
		for i := 0; i < width-sz; i++ {
			p.padding.Set(byte(depth + i))
		}
		depth += width
	}
	p.length = depth
	return p
}

// Depth returns the padded depth.
func (p *PaddedCursor[V]) Depth() int { return p.depth }

// Peek returns 0 at padding depths and delegates otherwise.
func (p *PaddedCursor[V]) Peek() (byte, bool) {
	if p.depth >= p.length {
		return 0, false
	}
	if p.padding.IsSet(byte(p.depth)) {
		return 0, true
	}
	return p.cursor.Peek()
}

// Propose yields {0} at padding depths and delegates otherwise.
func (p *PaddedCursor[V]) Propose(out *ByteBitset) {
	if p.depth >= p.length {
		out.UnsetAll()
		return
	}
	if p.padding.IsSet(byte(p.depth)) {
		out.UnsetAll()
		out.Set(0)
		return
	}
	p.cursor.Propose(out)
}

// Push advances one padded depth, moving the wrapped cursor only at
// non-padding depths.
func (p *PaddedCursor[V]) Push(b byte) {
	if p.depth >= p.length {
		panic("tribles: cursor pushed past the key length")
	}
	if p.padding.IsSet(byte(p.depth)) {
		if b != 0 {
			panic("tribles: nonzero byte pushed at a padding depth")
		}
		p.depth++
		return
	}
	p.cursor.Push(b)
	p.depth++
}

// Pop retreats one padded depth.
func (p *PaddedCursor[V]) Pop() {
	if p.depth == 0 {
		panic("tribles: cursor popped below the root")
	}
	if !p.padding.IsSet(byte(p.depth - 1)) {
		p.cursor.Pop()
	}
	p.depth--
}

// SegmentCount delegates to the wrapped cursor.
func (p *PaddedCursor[V]) SegmentCount() uint32 {
	return p.cursor.SegmentCount()
}

// Sample returns a pseudorandom selectivity sample of the current
// subtree, derived from its structural digest.
func (p *PaddedCursor[V]) Sample() uint32 {
	h := p.cursor.SubtreeHash()
	return binary.LittleEndian.Uint32(h[:4])
}
