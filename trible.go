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

// Field widths of a trible: a 16-byte entity id, a 16-byte attribute id
// and a 32-byte value, concatenated to a 64-byte key.
const (
	ESize      = 16
	ASize      = 16
	VSize      = 32
	TribleSize = ESize + ASize + VSize
)

// Id is a 16-byte entity or attribute identifier.
type Id [16]byte

// Value is a 32-byte trible value.
type Value [32]byte

// Trible is one (entity, attribute, value) fact in canonical EAV byte
// order.
type Trible [TribleSize]byte

// NewTrible assembles a trible from its three fields.
func NewTrible(e, a Id, v Value) Trible {
	var t Trible
	copy(t[:ESize], e[:])
	copy(t[ESize:ESize+ASize], a[:])
	copy(t[ESize+ASize:], v[:])
	return t
}

// E returns the entity id.
func (t *Trible) E() Id {
	var e Id
	copy(e[:], t[:ESize])
	return e
}

// A returns the attribute id.
func (t *Trible) A() Id {
	var a Id
	copy(a[:], t[ESize:ESize+ASize])
	return a
}

// V returns the value.
func (t *Trible) V() Value {
	var v Value
	copy(v[:], t[ESize+ASize:])
	return v
}

// The six permutations a trible is indexed under. The ordering of the
// constants matches permLayouts and permKey below.
const (
	permEAV = iota
	permEVA
	permAEV
	permAVE
	permVEA
	permVAE
	permCount
)

var permNames = [permCount]string{"eav", "eva", "aev", "ave", "vea", "vae"}

var permLayouts = [permCount]*Layout{
	NewLayout(ESize, ASize, VSize),
	NewLayout(ESize, VSize, ASize),
	NewLayout(ASize, ESize, VSize),
	NewLayout(ASize, VSize, ESize),
	NewLayout(VSize, ESize, ASize),
	NewLayout(VSize, ASize, ESize),
}

var permKey = [permCount]func(*Trible) [TribleSize]byte{
	orderEAV, orderEVA, orderAEV, orderAVE, orderVEA, orderVAE,
}

func orderEAV(t *Trible) [TribleSize]byte {
	return *t
}

func orderEVA(t *Trible) [TribleSize]byte {
	var k [TribleSize]byte
	copy(k[:ESize], t[:ESize])
	copy(k[ESize:ESize+VSize], t[ESize+ASize:])
	copy(k[ESize+VSize:], t[ESize:ESize+ASize])
	return k
}

func orderAEV(t *Trible) [TribleSize]byte {
	var k [TribleSize]byte
	copy(k[:ASize], t[ESize:ESize+ASize])
	copy(k[ASize:ASize+ESize], t[:ESize])
	copy(k[ASize+ESize:], t[ESize+ASize:])
	return k
}

func orderAVE(t *Trible) [TribleSize]byte {
	var k [TribleSize]byte
	copy(k[:ASize], t[ESize:ESize+ASize])
	copy(k[ASize:ASize+VSize], t[ESize+ASize:])
	copy(k[ASize+VSize:], t[:ESize])
	return k
}

func orderVEA(t *Trible) [TribleSize]byte {
	var k [TribleSize]byte
	copy(k[:VSize], t[ESize+ASize:])
	copy(k[VSize:VSize+ESize], t[:ESize])
	copy(k[VSize+ESize:], t[ESize:ESize+ASize])
	return k
}

func orderVAE(t *Trible) [TribleSize]byte {
	var k [TribleSize]byte
	copy(k[:VSize], t[ESize+ASize:])
	copy(k[VSize:VSize+ASize], t[ESize:ESize+ASize])
	copy(k[VSize+ASize:], t[:ESize])
	return k
}
