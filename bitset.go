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

import "math/bits"

// ByteBitset is a fixed-size bitset over the 256 possible byte values.
// It is stored inline in node bodies, so it is a plain array rather than
// a heap-backed bitset.
type ByteBitset [4]uint64

// Set sets the bit for b.
func (s *ByteBitset) Set(b byte) {
	s[b>>6] |= 1 << (b & 63)
}

// Unset clears the bit for b.
func (s *ByteBitset) Unset(b byte) {
	s[b>>6] &^= 1 << (b & 63)
}

// SetValue sets the bit for b to v.
func (s *ByteBitset) SetValue(b byte, v bool) {
	if v {
		s.Set(b)
	} else {
		s.Unset(b)
	}
}

// IsSet reports whether the bit for b is set.
func (s *ByteBitset) IsSet(b byte) bool {
	return s[b>>6]&(1<<(b&63)) != 0
}

// SetAll sets all 256 bits.
func (s *ByteBitset) SetAll() {
	s[0], s[1], s[2], s[3] = ^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)
}

// UnsetAll clears all 256 bits.
func (s *ByteBitset) UnsetAll() {
	s[0], s[1], s[2], s[3] = 0, 0, 0, 0
}

// Count returns the number of set bits.
func (s *ByteBitset) Count() int {
	return bits.OnesCount64(s[0]) + bits.OnesCount64(s[1]) + bits.OnesCount64(s[2]) + bits.OnesCount64(s[3])
}

// IsEmpty reports whether no bit is set.
func (s *ByteBitset) IsEmpty() bool {
	return s[0]|s[1]|s[2]|s[3] == 0
}

// Intersect restricts s to the bits also set in o.
func (s *ByteBitset) Intersect(o *ByteBitset) {
	s[0] &= o[0]
	s[1] &= o[1]
	s[2] &= o[2]
	s[3] &= o[3]
}

// Union adds all bits set in o to s.
func (s *ByteBitset) Union(o *ByteBitset) {
	s[0] |= o[0]
	s[1] |= o[1]
	s[2] |= o[2]
	s[3] |= o[3]
}

// Subtract removes all bits set in o from s.
func (s *ByteBitset) Subtract(o *ByteBitset) {
	s[0] &^= o[0]
	s[1] &^= o[1]
	s[2] &^= o[2]
	s[3] &^= o[3]
}

// FindFirstSet returns the lowest set bit.
func (s *ByteBitset) FindFirstSet() (byte, bool) {
	for w := 0; w < 4; w++ {
		if s[w] != 0 {
			return byte(w<<6 + bits.TrailingZeros64(s[w])), true
		}
	}
	return 0, false
}

// FindLastSet returns the highest set bit.
func (s *ByteBitset) FindLastSet() (byte, bool) {
	for w := 3; w >= 0; w-- {
		if s[w] != 0 {
			return byte(w<<6 + 63 - bits.LeadingZeros64(s[w])), true
		}
	}
	return 0, false
}

// DrainNextAscending returns the lowest set bit and clears it.
func (s *ByteBitset) DrainNextAscending() (byte, bool) {
	b, ok := s.FindFirstSet()
	if ok {
		s.Unset(b)
	}
	return b, ok
}

// DrainNextDescending returns the highest set bit and clears it.
func (s *ByteBitset) DrainNextDescending() (byte, bool) {
	b, ok := s.FindLastSet()
	if ok {
		s.Unset(b)
	}
	return b, ok
}
