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

import "golang.org/x/sync/errgroup"

// TribleSet is a composite index over tribles: six PACTs, one per field
// permutation, written in lockstep. Any one of them answers counts and
// set predicates; together they let a constraint walk the fields of a
// query in any binding order.
type TribleSet struct {
	trees [permCount]*Tree[struct{}]
}

// NewTribleSet returns an empty set.
func NewTribleSet() *TribleSet {
	s := &TribleSet{}
	for p := 0; p < permCount; p++ {
		s.trees[p] = NewTree[struct{}](permLayouts[p])
	}
	return s
}

// Add inserts one trible under all six permutations.
func (s *TribleSet) Add(t Trible) error {
	for p := 0; p < permCount; p++ {
		k := permKey[p](&t)
		if err := s.trees[p].Put(k[:], struct{}{}); err != nil {
			return err
		}
	}
	return nil
}

// AddAll inserts a batch of tribles, maintaining the six permutation
// trees concurrently. Each tree keeps a single writer.
func (s *TribleSet) AddAll(tribles []Trible) error {
	var g errgroup.Group
	for p := 0; p < permCount; p++ {
		p := p
		g.Go(func() error {
			for i := range tribles {
				k := permKey[p](&tribles[i])
				if err := s.trees[p].Put(k[:], struct{}{}); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// Has reports whether the set contains t.
func (s *TribleSet) Has(t Trible) bool {
	return s.trees[permEAV].Has(t[:])
}

// Count returns the number of tribles. The six trees are in lockstep,
// so any one of them answers.
func (s *TribleSet) Count() uint64 {
	return s.trees[permEAV].Count()
}

// IsEmpty reports whether the set holds no tribles.
func (s *TribleSet) IsEmpty() bool {
	return s.trees[permEAV].IsEmpty()
}

// Equal reports whether both sets hold the same tribles.
func (s *TribleSet) Equal(o *TribleSet) bool {
	return s.trees[permEAV].Equal(o.trees[permEAV])
}

// SubsetOf reports whether every trible of s is in o.
func (s *TribleSet) SubsetOf(o *TribleSet) bool {
	return s.trees[permEAV].IsSubsetOf(o.trees[permEAV])
}

// Intersects reports whether s and o share a trible.
func (s *TribleSet) Intersects(o *TribleSet) bool {
	return s.trees[permEAV].IsIntersecting(o.trees[permEAV])
}

// Branch forks an independent snapshot of the set.
func (s *TribleSet) Branch() *TribleSet {
	b := &TribleSet{}
	for p := 0; p < permCount; p++ {
		b.trees[p] = s.trees[p].Branch()
	}
	return b
}

// Union returns a new set holding the tribles of s and all others, the
// six permutations merged concurrently.
func (s *TribleSet) Union(others ...*TribleSet) *TribleSet {
	res := &TribleSet{}
	var g errgroup.Group
	for p := 0; p < permCount; p++ {
		p := p
		g.Go(func() error {
			ts := make([]*Tree[struct{}], 0, len(others)+1)
			ts = append(ts, s.trees[p])
			for _, o := range others {
				ts = append(ts, o.trees[p])
			}
			res.trees[p] = Union(ts...)
			return nil
		})
	}
	_ = g.Wait()
	return res
}

// Intersection returns a new set holding the tribles common to s and
// all others.
func (s *TribleSet) Intersection(others ...*TribleSet) *TribleSet {
	res := &TribleSet{}
	var g errgroup.Group
	for p := 0; p < permCount; p++ {
		p := p
		g.Go(func() error {
			ts := make([]*Tree[struct{}], 0, len(others)+1)
			ts = append(ts, s.trees[p])
			for _, o := range others {
				ts = append(ts, o.trees[p])
			}
			res.trees[p] = Intersection(ts...)
			return nil
		})
	}
	_ = g.Wait()
	return res
}
