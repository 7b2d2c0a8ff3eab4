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
	"encoding/hex"
	"errors"
	mRand "math/rand"
	"os"
	"testing"
	"testing/quick"

	"github.com/davecgh/go-spew/spew"
)

func TestMain(m *testing.M) {
	// Reproducible structural hashes for every test in the package.
	SetHashSecret([HashSize]byte{
		0xde, 0xad, 0xbe, 0xef, 0x01, 0x23, 0x45, 0x67,
		0x89, 0xab, 0xcd, 0xef, 0xfe, 0xdc, 0xba, 0x98,
	})
	os.Exit(m.Run())
}

var (
	zeroKeyTest, _ = hex.DecodeString("00000000")
	oneKeyTest, _  = hex.DecodeString("00000001")
	onesKeyTest, _ = hex.DecodeString("01010101")
	ffKeyTest, _   = hex.DecodeString("ffffffff")
)

func newTestTree() *Tree[uint32] {
	return NewTree[uint32](NewLayout(4))
}

func TestInsertIntoEmpty(t *testing.T) {
	t.Parallel()

	tree := newTestTree()
	if err := tree.Put(zeroKeyTest, 1); err != nil {
		t.Fatalf("error inserting: %v", err)
	}
	if tree.Count() != 1 {
		t.Fatalf("invalid count %d != 1", tree.Count())
	}
	if v, ok := tree.Get(zeroKeyTest); !ok || v != 1 {
		t.Fatalf("did not find inserted value, got %d ok=%v", v, ok)
	}
	if _, ok := tree.Root().(*LeafNode[uint32]); !ok {
		t.Fatalf("root is not a leaf: %s", tree.Dump())
	}
}

func TestInsertTwoLeavesLastByte(t *testing.T) {
	t.Parallel()

	tree := newTestTree()
	if err := tree.Put(zeroKeyTest, 1); err != nil {
		t.Fatalf("error inserting: %v", err)
	}
	if err := tree.Put(oneKeyTest, 2); err != nil {
		t.Fatalf("error inserting: %v", err)
	}
	if tree.Count() != 2 {
		t.Fatalf("invalid count %d != 2", tree.Count())
	}

	infix, ok := tree.Root().(*InfixNode[uint32])
	if !ok {
		t.Fatalf("root is not an infix: %s", tree.Dump())
	}
	if infix.start != 0 || infix.branchDepth != 3 {
		t.Fatalf("invalid infix span [%d..%d], want [0..3]", infix.start, infix.branchDepth)
	}
	branch, ok := infix.child.(*BranchNode[uint32])
	if !ok {
		t.Fatalf("infix child is not a branch: %s", tree.Dump())
	}
	if branch.BucketCount() != 1 {
		t.Fatalf("invalid bucket count %d != 1", branch.BucketCount())
	}
	if branch.childSet.Count() != 2 {
		t.Fatalf("invalid child count %d != 2", branch.childSet.Count())
	}
	for _, want := range []struct {
		key []byte
		val uint32
	}{{zeroKeyTest, 1}, {oneKeyTest, 2}} {
		if v, ok := tree.Get(want.key); !ok || v != want.val {
			t.Fatalf("get %x returned %d ok=%v, want %d", want.key, v, ok, want.val)
		}
	}
	checkTreeInvariants(t, tree)
}

func TestBranchSnapshotIsolation(t *testing.T) {
	t.Parallel()

	a := newTestTree()
	if err := a.Put(zeroKeyTest, 1); err != nil {
		t.Fatalf("error inserting: %v", err)
	}
	b := a.Branch()
	if err := a.Put(oneKeyTest, 2); err != nil {
		t.Fatalf("error inserting: %v", err)
	}

	if a.Count() != 2 {
		t.Fatalf("invalid count %d != 2", a.Count())
	}
	if b.Count() != 1 {
		t.Fatalf("snapshot count changed: %d != 1", b.Count())
	}
	if _, ok := b.Get(oneKeyTest); ok {
		t.Fatal("snapshot sees a later insert")
	}
	if !b.IsSubsetOf(a) {
		t.Fatal("snapshot is not a subset of its source")
	}
	if a.IsSubsetOf(b) {
		t.Fatal("grown tree is a subset of its snapshot")
	}
	checkTreeInvariants(t, a)
	checkTreeInvariants(t, b)
}

func TestInsert256LastByte(t *testing.T) {
	t.Parallel()

	tree := newTestTree()
	for i := 0; i < 256; i++ {
		key := []byte{0, 0, 0, byte(i)}
		if err := tree.Put(key, uint32(i)); err != nil {
			t.Fatalf("error inserting %x: %v", key, err)
		}
	}
	if tree.Count() != 256 {
		t.Fatalf("invalid count %d != 256", tree.Count())
	}

	infix, ok := tree.Root().(*InfixNode[uint32])
	if !ok {
		t.Fatalf("root is not an infix: %s", tree.Dump())
	}
	branch, ok := infix.child.(*BranchNode[uint32])
	if !ok {
		t.Fatalf("infix child is not a branch: %s", tree.Dump())
	}
	if branch.BucketCount() < 32 {
		t.Fatalf("branch did not grow: %d buckets", branch.BucketCount())
	}
	for i := 0; i < 256; i++ {
		key := []byte{0, 0, 0, byte(i)}
		if v, ok := tree.Get(key); !ok || v != uint32(i) {
			t.Fatalf("get %x returned %d ok=%v, want %d", key, v, ok, i)
		}
	}
	checkTreeInvariants(t, tree)
}

func TestInsert256FirstByte(t *testing.T) {
	t.Parallel()

	tree := newTestTree()
	for i := 0; i < 256; i++ {
		key := []byte{byte(i), 0, 0, 0}
		if err := tree.Put(key, uint32(i)); err != nil {
			t.Fatalf("error inserting %x: %v", key, err)
		}
	}
	if tree.Count() != 256 {
		t.Fatalf("invalid count %d != 256", tree.Count())
	}

	branch, ok := tree.Root().(*BranchNode[uint32])
	if !ok {
		t.Fatalf("root is not a branch: %s", tree.Dump())
	}
	if branch.childSet.Count() != 256 {
		t.Fatalf("invalid child count %d != 256", branch.childSet.Count())
	}
	for i := 0; i < 256; i++ {
		key := []byte{byte(i), 0, 0, 0}
		if v, ok := tree.Get(key); !ok || v != uint32(i) {
			t.Fatalf("get %x returned %d ok=%v, want %d", key, v, ok, i)
		}
	}
	checkTreeInvariants(t, tree)
}

func TestMaxInfixDivergence(t *testing.T) {
	t.Parallel()

	tree := newTestTree()
	if err := tree.Put(zeroKeyTest, 1); err != nil {
		t.Fatalf("error inserting: %v", err)
	}
	if err := tree.Put(onesKeyTest, 2); err != nil {
		t.Fatalf("error inserting: %v", err)
	}
	branch, ok := tree.Root().(*BranchNode[uint32])
	if !ok {
		t.Fatalf("root is not a branch: %s", tree.Dump())
	}
	if branch.branchDepth != 0 {
		t.Fatalf("invalid branch depth %d != 0", branch.branchDepth)
	}
	checkTreeInvariants(t, tree)
}

func TestSameKeyReinsert(t *testing.T) {
	t.Parallel()

	tree := newTestTree()
	if err := tree.Put(ffKeyTest, 1); err != nil {
		t.Fatalf("error inserting: %v", err)
	}
	h1 := tree.Hash()

	// Same value again: everything unchanged.
	if err := tree.Put(ffKeyTest, 1); err != nil {
		t.Fatalf("error re-inserting: %v", err)
	}
	if tree.Count() != 1 {
		t.Fatalf("invalid count %d != 1", tree.Count())
	}
	if tree.Hash() != h1 {
		t.Fatal("re-insert changed the structural hash")
	}

	// Different value: the value is overwritten, the hash is not.
	if err := tree.Put(ffKeyTest, 7); err != nil {
		t.Fatalf("error overwriting: %v", err)
	}
	if tree.Count() != 1 {
		t.Fatalf("invalid count %d != 1", tree.Count())
	}
	if tree.Hash() != h1 {
		t.Fatal("value overwrite changed the structural hash")
	}
	if v, _ := tree.Get(ffKeyTest); v != 7 {
		t.Fatalf("get returned %d, want the overwritten value 7", v)
	}
}

func TestGetMissing(t *testing.T) {
	t.Parallel()

	tree := newTestTree()
	if _, ok := tree.Get(zeroKeyTest); ok {
		t.Fatal("get on an empty tree found a value")
	}
	if err := tree.Put(zeroKeyTest, 1); err != nil {
		t.Fatalf("error inserting: %v", err)
	}
	if _, ok := tree.Get(oneKeyTest); ok {
		t.Fatal("get found a key that was never inserted")
	}
}

func TestPutBadKeyLength(t *testing.T) {
	t.Parallel()

	tree := newTestTree()
	if err := tree.Put([]byte{1, 2, 3}, 1); !errors.Is(err, errBadKeyLength) {
		t.Fatalf("expected key length error, got %v", err)
	}
}

func TestInsertOrderIndependence(t *testing.T) {
	t.Parallel()

	rng := mRand.New(mRand.NewSource(42))
	keys := make([][]byte, 10000)
	for i := range keys {
		keys[i] = make([]byte, 4)
		rng.Read(keys[i])
	}

	fwd := newTestTree()
	for _, k := range keys {
		if err := fwd.Put(k, 1); err != nil {
			t.Fatalf("error inserting: %v", err)
		}
	}
	rev := newTestTree()
	for i := len(keys) - 1; i >= 0; i-- {
		if err := rev.Put(keys[i], 1); err != nil {
			t.Fatalf("error inserting: %v", err)
		}
	}

	if fwd.Hash() != rev.Hash() {
		t.Fatalf("root hashes differ: %s != %s", fwd.Hash(), rev.Hash())
	}
	if !fwd.Equal(rev) {
		t.Fatal("trees with the same key set are not equal")
	}
	if fwd.Count() != rev.Count() {
		t.Fatalf("counts differ: %d != %d", fwd.Count(), rev.Count())
	}
	checkTreeInvariants(t, fwd)
	checkTreeInvariants(t, rev)
}

func TestRandomInsertsQuick(t *testing.T) {
	t.Parallel()

	check := func(keys [][4]byte) bool {
		tree := newTestTree()
		seen := make(map[[4]byte]uint32)
		for i, k := range keys {
			if err := tree.Put(k[:], uint32(i)); err != nil {
				return false
			}
			seen[k] = uint32(i)
		}
		if tree.Count() != uint64(len(seen)) {
			return false
		}
		for k, v := range seen {
			got, ok := tree.Get(k[:])
			if !ok || got != v {
				return false
			}
		}
		// Re-insert everything in map order: the hash must not move.
		h := tree.Hash()
		for k, v := range seen {
			if err := tree.Put(k[:], v); err != nil {
				return false
			}
		}
		return tree.Hash() == h && tree.Count() == uint64(len(seen))
	}
	if err := quick.Check(check, &quick.Config{MaxCount: 50}); err != nil {
		var cerr *quick.CheckError
		if errors.As(err, &cerr) {
			t.Fatalf("random insert iteration %d failed: %s", cerr.Count, spew.Sdump(cerr.In))
		}
		t.Fatal(err)
	}
}

func TestSnapshotChains(t *testing.T) {
	t.Parallel()

	base := newTestTree()
	for i := 0; i < 64; i++ {
		if err := base.Put([]byte{0, 1, 2, byte(i)}, uint32(i)); err != nil {
			t.Fatalf("error inserting: %v", err)
		}
	}

	snaps := make([]*Tree[uint32], 8)
	for i := range snaps {
		snaps[i] = base.Branch()
		if err := base.Put([]byte{byte(i + 1), 0, 0, 0}, 0); err != nil {
			t.Fatalf("error inserting: %v", err)
		}
	}
	for i, s := range snaps {
		if want := uint64(64 + i); s.Count() != want {
			t.Fatalf("snapshot %d count %d != %d", i, s.Count(), want)
		}
		if !s.IsSubsetOf(base) {
			t.Fatalf("snapshot %d is not a subset of its source", i)
		}
		checkTreeInvariants(t, s)
	}
	checkTreeInvariants(t, base)
}

func TestNodeIteratorLeaves(t *testing.T) {
	t.Parallel()

	rng := mRand.New(mRand.NewSource(7))
	tree := newTestTree()
	want := make(map[[4]byte]bool)
	for i := 0; i < 500; i++ {
		var k [4]byte
		rng.Read(k[:])
		if err := tree.Put(k[:], 1); err != nil {
			t.Fatalf("error inserting: %v", err)
		}
		want[k] = true
	}

	got := make(map[[4]byte]int)
	it := tree.Nodes()
	for it.Next() {
		item := it.Item()
		leaf, ok := item.Node.(*LeafNode[uint32])
		if !ok {
			continue
		}
		if !bytes.Equal(item.Prefix, leaf.Key()) {
			t.Fatalf("leaf prefix %x does not match key %x", item.Prefix, leaf.Key())
		}
		var k [4]byte
		copy(k[:], item.Prefix)
		got[k]++
	}
	if len(got) != len(want) {
		t.Fatalf("iterator found %d leaves, want %d", len(got), len(want))
	}
	for k, n := range got {
		if !want[k] {
			t.Fatalf("iterator yielded uninserted key %x", k)
		}
		if n != 1 {
			t.Fatalf("leaf %x yielded %d times", k, n)
		}
	}
}

func TestSegmentCounts(t *testing.T) {
	t.Parallel()

	// Two segments of two bytes each: the root segment count tracks
	// distinct two-byte prefixes, not keys.
	tree := NewTree[uint32](NewLayout(2, 2))
	for i := 0; i < 4; i++ {
		for j := 0; j < 8; j++ {
			key := []byte{byte(i), 0, byte(j), 0}
			if err := tree.Put(key, 0); err != nil {
				t.Fatalf("error inserting: %v", err)
			}
		}
	}
	c := tree.Cursor()
	if got := c.SegmentCount(); got != 4 {
		t.Fatalf("root segment count %d != 4", got)
	}
	c.Push(1)
	c.Push(0)
	if got := c.SegmentCount(); got != 8 {
		t.Fatalf("segment count below one prefix %d != 8", got)
	}
	checkTreeInvariants(t, tree)
}
