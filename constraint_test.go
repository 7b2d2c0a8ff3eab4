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
	"bytes"
	"testing"

	"github.com/bits-and-blooms/bitset"
)

// enumerateBindings collects every complete padded-segment binding of
// the variable on top of the constraint's binding stack.
func enumerateBindings(c *TribleConstraint) [][paddedSegment]byte {
	var out [][paddedSegment]byte
	var cur [paddedSegment]byte
	var rec func(depth int)
	rec = func(depth int) {
		if depth == paddedSegment {
			out = append(out, cur)
			return
		}
		var bs ByteBitset
		c.ProposeByte(&bs)
		for {
			b, ok := bs.DrainNextAscending()
			if !ok {
				return
			}
			cur[depth] = b
			c.PushByte(b)
			rec(depth + 1)
			c.PopByte()
		}
	}
	rec(0)
	return out
}

// pushBinding pushes one complete padded binding byte by byte.
func pushBinding(c *TribleConstraint, binding [paddedSegment]byte) {
	for _, b := range binding {
		c.PushByte(b)
	}
}

func popBinding(c *TribleConstraint) {
	for i := 0; i < paddedSegment; i++ {
		c.PopByte()
	}
}

func paddedId(id Id) [paddedSegment]byte {
	var p [paddedSegment]byte
	copy(p[paddedSegment-len(id):], id[:])
	return p
}

func constraintFixture(t *testing.T) *TribleSet {
	t.Helper()
	s := NewTribleSet()
	for _, tr := range []Trible{
		NewTrible(testId(1), testId(10), testValue(100)),
		NewTrible(testId(1), testId(11), testValue(101)),
		NewTrible(testId(2), testId(10), testValue(100)),
	} {
		if err := s.Add(tr); err != nil {
			t.Fatalf("error adding: %v", err)
		}
	}
	return s
}

func TestConstraintVariables(t *testing.T) {
	t.Parallel()

	c := constraintFixture(t).Constraint(3, 5, 9)
	vars := bitset.New(16)
	c.Variables(vars)
	for _, v := range []uint{3, 5, 9} {
		if !vars.Test(v) {
			t.Fatalf("variable %d not reported", v)
		}
	}
	if vars.Count() != 3 {
		t.Fatalf("constraint reported %d variables, want 3", vars.Count())
	}
}

func TestConstraintCounts(t *testing.T) {
	t.Parallel()

	c := constraintFixture(t).Constraint(0, 1, 2)

	if got := c.CountVariable(0); got != 2 {
		t.Fatalf("entity count %d != 2", got)
	}
	if got := c.CountVariable(1); got != 2 {
		t.Fatalf("attribute count %d != 2", got)
	}
	if got := c.CountVariable(2); got != 2 {
		t.Fatalf("value count %d != 2", got)
	}

	// Below entity 1 there are two attributes and two values; below
	// entity 2 there is one of each.
	c.PushVariable(0)
	pushBinding(c, paddedId(testId(1)))
	if got := c.CountVariable(1); got != 2 {
		t.Fatalf("attribute count under entity 1: %d != 2", got)
	}
	if got := c.CountVariable(2); got != 2 {
		t.Fatalf("value count under entity 1: %d != 2", got)
	}
	popBinding(c)
	pushBinding(c, paddedId(testId(2)))
	if got := c.CountVariable(1); got != 1 {
		t.Fatalf("attribute count under entity 2: %d != 1", got)
	}
	popBinding(c)
	c.PopVariable()
}

func TestConstraintEnumeration(t *testing.T) {
	t.Parallel()

	c := constraintFixture(t).Constraint(0, 1, 2)

	c.PushVariable(0)
	entities := enumerateBindings(c)
	if len(entities) != 2 {
		t.Fatalf("enumerated %d entities, want 2", len(entities))
	}
	want := [][paddedSegment]byte{paddedId(testId(1)), paddedId(testId(2))}
	for i := range entities {
		if !bytes.Equal(entities[i][:], want[i][:]) {
			t.Fatalf("entity %d is %x, want %x", i, entities[i], want[i])
		}
	}

	// Bind entity 1, then walk its values through the eva index.
	pushBinding(c, paddedId(testId(1)))
	c.PushVariable(2)
	values := enumerateBindings(c)
	if len(values) != 2 {
		t.Fatalf("enumerated %d values under entity 1, want 2", len(values))
	}

	// Bind value 101 and check the only attribute left is 11.
	val := testValue(101)
	var v101 [paddedSegment]byte
	copy(v101[:], val[:])
	pushBinding(c, v101)
	c.PushVariable(1)
	attrs := enumerateBindings(c)
	if len(attrs) != 1 {
		t.Fatalf("enumerated %d attributes, want 1", len(attrs))
	}
	if got := paddedId(testId(11)); !bytes.Equal(attrs[0][:], got[:]) {
		t.Fatalf("attribute is %x, want %x", attrs[0], got)
	}

	// Unwind the whole state machine.
	c.PopVariable()
	popBinding(c)
	c.PopVariable()
	popBinding(c)
	c.PopVariable()
	if len(c.bound) != 0 {
		t.Fatalf("binding stack not empty after unwinding: %d", len(c.bound))
	}
}

func TestConstraintSampleStable(t *testing.T) {
	t.Parallel()

	s := constraintFixture(t)
	c1 := s.Constraint(0, 1, 2)
	c2 := s.Constraint(0, 1, 2)
	if c1.SampleVariable(0) != c2.SampleVariable(0) {
		t.Fatal("samples differ between identical constraints")
	}
}

func TestConstraintByteOpWithoutVariablePanics(t *testing.T) {
	t.Parallel()

	c := constraintFixture(t).Constraint(0, 1, 2)
	defer func() {
		if recover() == nil {
			t.Fatal("byte operation without a bound variable did not panic")
		}
	}()
	c.PushByte(0)
}
