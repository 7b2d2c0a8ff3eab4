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

import "github.com/bits-and-blooms/bitset"

// paddedSegment is the uniform byte width every trible field is padded
// to inside constraint cursors, so variable bindings are always 32
// bytes regardless of which field a variable covers.
const paddedSegment = VSize

type tribleRole int

const (
	roleE tribleRole = iota
	roleA
	roleV
)

// TribleConstraint views a TribleSet as a relation over three query
// variables. A stack of bound roles selects which of the six padded
// cursors is authoritative for byte-level operations; a join engine
// drives it through the variable/byte interface and intersects the
// proposals of all constraints sharing a variable.
type TribleConstraint struct {
	vars    [3]uint // variable ids for the e, a and v roles
	cursors [permCount]*PaddedCursor[struct{}]
	bound   []tribleRole
}

// Constraint binds the set's three fields to the given variable ids.
// The returned constraint reads a frozen snapshot of the set.
func (s *TribleSet) Constraint(e, a, v uint) *TribleConstraint {
	c := &TribleConstraint{vars: [3]uint{e, a, v}}
	for p := 0; p < permCount; p++ {
		c.cursors[p] = NewPaddedCursor(s.trees[p].Branch().Cursor(), paddedSegment)
	}
	return c
}

// Variables sets the bit of every variable this constraint mentions.
func (c *TribleConstraint) Variables(out *bitset.BitSet) {
	for _, v := range c.vars {
		out.Set(v)
	}
}

func (c *TribleConstraint) roleOf(v uint) tribleRole {
	for r, id := range c.vars {
		if id == v {
			return tribleRole(r)
		}
	}
	panic("tribles: variable not covered by this constraint")
}

// pairFor returns the two permutations whose first field is r.
func pairFor(r tribleRole) (int, int) {
	switch r {
	case roleE:
		return permEAV, permEVA
	case roleA:
		return permAEV, permAVE
	default:
		return permVEA, permVAE
	}
}

// permFor returns the permutation whose field order starts with the
// given role sequence.
func permFor(roles []tribleRole) int {
	switch roles[0] {
	case roleE:
		if len(roles) > 1 && roles[1] == roleV {
			return permEVA
		}
		return permEAV
	case roleA:
		if len(roles) > 1 && roles[1] == roleV {
			return permAVE
		}
		return permAEV
	default:
		if len(roles) > 1 && roles[1] == roleA {
			return permVAE
		}
		return permVEA
	}
}

func (c *TribleConstraint) authoritative() *PaddedCursor[struct{}] {
	if len(c.bound) == 0 {
		panic("tribles: byte operation with no variable bound")
	}
	return c.cursors[permFor(c.bound)]
}

// PushVariable starts binding the bytes of variable v.
func (c *TribleConstraint) PushVariable(v uint) {
	c.bound = append(c.bound, c.roleOf(v))
}

// PopVariable retracts the most recently pushed variable.
func (c *TribleConstraint) PopVariable() {
	if len(c.bound) == 0 {
		panic("tribles: popVariable with no variable bound")
	}
	c.bound = c.bound[:len(c.bound)-1]
}

// PeekByte returns the byte the index fixes at the current depth.
func (c *TribleConstraint) PeekByte() (byte, bool) {
	return c.authoritative().Peek()
}

// ProposeByte replaces out with the candidate bytes at the current
// depth.
func (c *TribleConstraint) ProposeByte(out *ByteBitset) {
	c.authoritative().Propose(out)
}

// PushByte fixes one byte of the variable on top of the binding stack.
// With a single bound variable both candidate indexes advance in
// lockstep so either can take over once a second variable is pushed.
func (c *TribleConstraint) PushByte(b byte) {
	switch len(c.bound) {
	case 0:
		panic("tribles: pushByte with no variable bound")
	case 1:
		p, q := pairFor(c.bound[0])
		c.cursors[p].Push(b)
		c.cursors[q].Push(b)
	default:
		c.authoritative().Push(b)
	}
}

// PopByte retracts the most recently pushed byte.
func (c *TribleConstraint) PopByte() {
	switch len(c.bound) {
	case 0:
		panic("tribles: popByte with no variable bound")
	case 1:
		p, q := pairFor(c.bound[0])
		c.cursors[p].Pop()
		c.cursors[q].Pop()
	default:
		c.authoritative().Pop()
	}
}

// CountVariable estimates the number of bindings for v given the
// current state: the segment count of the cursor that would become
// authoritative if v were pushed next.
func (c *TribleConstraint) CountVariable(v uint) uint32 {
	next := append(append([]tribleRole(nil), c.bound...), c.roleOf(v))
	return c.cursors[permFor(next)].SegmentCount()
}

// SampleVariable draws a selectivity sample for v, analogous to
// CountVariable.
func (c *TribleConstraint) SampleVariable(v uint) uint32 {
	next := append(append([]tribleRole(nil), c.bound...), c.roleOf(v))
	return c.cursors[permFor(next)].Sample()
}
