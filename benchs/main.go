package main

import (
	"crypto/rand"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	tribles "github.com/triblesspace/tribles-go"
)

func main() {
	benchmarkInsertAndUnion()
}

func benchmarkInsertAndUnion() {
	f, _ := os.Create("cpu.prof")
	g, _ := os.Create("mem.prof")
	_ = pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()
	defer func() { _ = pprof.WriteHeapProfile(g) }()

	if err := tribles.InitHashSecret(); err != nil {
		panic(err)
	}

	// Number of existing tribles in the set
	n := 1000000
	// Tribles to be inserted afterwards
	toInsert := 10000
	total := n + toInsert

	for i := 0; i < 4; i++ {
		// Generate the trible set once per round
		all := make([]tribles.Trible, total)
		for j := range all {
			var e, a tribles.Id
			var v tribles.Value
			if _, err := rand.Read(e[:]); err != nil {
				panic(err)
			}
			if _, err := rand.Read(a[:8]); err != nil {
				panic(err)
			}
			if _, err := rand.Read(v[:]); err != nil {
				panic(err)
			}
			all[j] = tribles.NewTrible(e, a, v)
		}
		fmt.Printf("Generated trible set %d\n", i)

		for j := 0; j < 5; j++ {
			set := tribles.NewTribleSet()
			if err := set.AddAll(all[:n]); err != nil {
				panic(err)
			}

			start := time.Now()
			if err := set.AddAll(all[n:]); err != nil {
				panic(err)
			}
			elapsed := time.Since(start)
			fmt.Printf("Took %v to insert %d tribles (%d total)\n", elapsed, toInsert, set.Count())

			other := tribles.NewTribleSet()
			if err := other.AddAll(all[n:]); err != nil {
				panic(err)
			}
			start = time.Now()
			u := set.Union(other)
			fmt.Printf("Took %v to union, %d tribles\n", time.Since(start), u.Count())
		}
	}
}
