package main

import (
	"crypto/rand"
	"fmt"
	mRand "math/rand"

	tribles "github.com/triblesspace/tribles-go"
)

// pactcheck inserts the same random key set into two trees in opposite
// orders, forever, and panics as soon as their structural hashes or
// lookups disagree.
func main() {
	if err := tribles.InitHashSecret(); err != nil {
		panic(err)
	}
	layout := tribles.NewLayout(16, 16, 32)

	for attempt := 0; ; attempt++ {
		fmt.Println("attempt #", attempt)

		keys := make([][]byte, 10000)
		for i := range keys {
			keys[i] = make([]byte, layout.KeyLen())
			if _, err := rand.Read(keys[i]); err != nil {
				panic(err)
			}
			// Skew the prefix so branches and infixes mix.
			keys[i][0] %= 8
		}

		fwd := tribles.NewTree[uint64](layout)
		for i, k := range keys {
			if err := fwd.Put(k, uint64(i)); err != nil {
				panic(err)
			}
		}
		rev := tribles.NewTree[uint64](layout)
		for i := len(keys) - 1; i >= 0; i-- {
			if err := rev.Put(keys[i], uint64(i)); err != nil {
				panic(err)
			}
		}

		if fwd.Hash() != rev.Hash() {
			panic("differing root hashes")
		}
		if fwd.Count() != rev.Count() {
			panic("differing counts")
		}
		for _, i := range mRand.Perm(len(keys)) {
			if _, ok := fwd.Get(keys[i]); !ok {
				panic(fmt.Sprintf("key %x lost", keys[i]))
			}
		}
		snap := fwd.Branch()
		extra := make([]byte, layout.KeyLen())
		if _, err := rand.Read(extra); err != nil {
			panic(err)
		}
		before := snap.Count()
		if err := fwd.Put(extra, 0); err != nil {
			panic(err)
		}
		if snap.Count() != before {
			panic("snapshot observed a later insert")
		}
		if !snap.IsSubsetOf(fwd) {
			panic("snapshot is not a subset of its source")
		}
	}
}
