package main

// dataset_gen generates a synthetic key dataset and, for each key, the set
// index and fingerprint that internal/fphash would derive for a candidate
// set count — the same derivation SingleCache.probe uses on every Insert/
// Get/Invalidate. Piping this through a histogram answers the sizing
// question this cache actually poses: for a given (distribution, set count)
// pair, how lopsided is the per-set occupancy, and how often do two
// distinct keys collide on both set index and 8-bit fingerprint? Neither
// question can be answered from a bare list of keys, which is all the
// teacher's arena-cache (byte-budgeted, not set-associative) ever needed.
//
// Usage:
//   go run ./tools/dataset_gen -n 1000000 -dist=zipf -seed=42 -sets=4096 -out dataset.csv
//
// Output is CSV: key,set_index,fingerprint
//
// Flags:
//   -n       number of keys to generate (default 1e6)
//   -dist    distribution: "uniform" or "zipf" (default uniform)
//   -zipfs   Zipf s parameter (>1)  (default 1.2)
//   -zipfv   Zipf v parameter (>=1) (default 1.0)
//   -seed    RNG seed (default current time)
//   -sets    candidate set count, must be a power of two (default 4096)
//   -out     output file (default stdout)
//
// © 2025 arena-cache authors. MIT License.

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/arena-cache/setcache/internal/fphash"
	"github.com/arena-cache/setcache/internal/unsafehelpers"
	"github.com/spf13/pflag"
)

func main() {
	var (
		n        = pflag.Int("n", 1_000_000, "number of keys to generate")
		dist     = pflag.String("dist", "uniform", "distribution: uniform or zipf")
		zipfS    = pflag.Float64("zipfs", 1.2, "zipf s parameter (>1)")
		zipfV    = pflag.Float64("zipfv", 1.0, "zipf v parameter (>=1)")
		seedVal  = pflag.Int64("seed", time.Now().UnixNano(), "PRNG seed")
		setCount = pflag.Int("sets", 4096, "candidate set count (must be a power of two)")
		outPath  = pflag.String("out", "", "output CSV file (default stdout)")
	)
	pflag.Parse()

	if !unsafehelpers.IsPowerOfTwo(*setCount) {
		fmt.Fprintln(os.Stderr, "sets must be a power of two")
		os.Exit(1)
	}

	rnd := rand.New(rand.NewSource(*seedVal))

	var gen func() uint64
	switch *dist {
	case "uniform":
		gen = rnd.Uint64
	case "zipf":
		if *zipfS <= 1.0 || *zipfV < 1.0 {
			fmt.Fprintln(os.Stderr, "zipfs must be >1 and zipfv >=1")
			os.Exit(1)
		}
		z := rand.NewZipf(rnd, *zipfS, *zipfV, ^uint64(0))
		gen = z.Uint64
	default:
		fmt.Fprintln(os.Stderr, "unknown dist:", *dist)
		os.Exit(1)
	}

	var out *os.File
	var err error
	if *outPath == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(*outPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot create file:", err)
			os.Exit(1)
		}
		defer out.Close()
	}

	w := bufio.NewWriterSize(out, 1<<20)
	defer w.Flush()

	hasher := fphash.New()
	setMask := uint64(*setCount - 1)

	fmt.Fprintln(w, "key,set_index,fingerprint")
	for i := 0; i < *n; i++ {
		key := gen()
		h := fphash.Sum64(hasher, key)
		fmt.Fprintf(w, "%d,%d,%d\n", key, fphash.SetIndex(h, setMask), fphash.Fingerprint(h))
	}
}
