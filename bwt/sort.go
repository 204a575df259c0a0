// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// compareRotations compares the rotations of block starting at i and j.
func compareRotations(block []byte, i, j int) int {
	n := len(block)
	if i == j {
		return 0
	}
	for t := 0; t < n; t++ {
		if x, y := block[i], block[j]; x != y {
			if x < y {
				return -1
			}
			return +1
		}
		if i++; i == n {
			i = 0
		}
		if j++; j == n {
			j = 0
		}
	}
	return 0
}

// lessRotation is a strict total order over offsets: rotations first, then
// the offsets themselves for identical rotations.
func lessRotation(block []byte, i, j int) bool {
	c := compareRotations(block, i, j)
	return c < 0 || (c == 0 && i < j)
}

func sortComparison(block []byte, order []int) {
	sort.Slice(order, func(a, b int) bool {
		return lessRotation(block, order[a], order[b])
	})
}

// parallelRun is the smallest run handed to its own goroutine.
var parallelRun = 1024

func sortParallel(block []byte, order []int) {
	n := len(order)
	procs := runtime.GOMAXPROCS(0)
	run := (n + procs - 1) / procs
	if run < parallelRun {
		run = parallelRun
	}
	if run >= n {
		sortComparison(block, order)
		return
	}

	var g errgroup.Group
	g.SetLimit(procs)
	for lo := 0; lo < n; lo += run {
		part := order[lo:minInt(lo+run, n)]
		g.Go(func() error {
			sortComparison(block, part)
			return nil
		})
	}
	g.Wait()

	// Merge adjacent sorted runs, doubling the run width at each level.
	buf := make([]int, n)
	for width := run; width < n; width *= 2 {
		for lo := 0; lo+width < n; lo += 2 * width {
			lo, mid, hi := lo, lo+width, minInt(lo+2*width, n)
			g.Go(func() error {
				mergeRotations(block, order[lo:mid], order[mid:hi], buf[lo:hi])
				copy(order[lo:hi], buf[lo:hi])
				return nil
			})
		}
		g.Wait()
	}
}

func mergeRotations(block []byte, left, right, out []int) {
	for len(left) > 0 && len(right) > 0 {
		if lessRotation(block, right[0], left[0]) {
			out[0], right = right[0], right[1:]
		} else {
			out[0], left = left[0], left[1:]
		}
		out = out[1:]
	}
	n := copy(out, left)
	copy(out[n:], right)
}

// sortDoubling sorts rotations by prefix doubling. After the round with step
// k, rank[i] is the dense rank of the cyclic prefix of length 2k starting at
// i. Once 2k >= n, equal ranks mean identical rotations.
func sortDoubling(block []byte) []int {
	n := len(block)
	order := make([]int, n)
	rank := make([]int, n)
	tmp := make([]int, n)
	cnt := make([]int, maxInt(n, 256))

	// Initial ranks are the byte values themselves.
	for i, c := range block {
		rank[i] = int(c)
	}
	countingSort(order, identity(tmp), rank, cnt[:256])
	classes := renumber(order, rank, tmp, func(i, j int) bool {
		return block[i] == block[j]
	})
	rank, tmp = tmp, rank

	for k := 1; k < n && classes < n; k *= 2 {
		// Offsets ordered by the rank of their second half.
		for j, i := range order {
			if i -= k; i < 0 {
				i += n
			}
			tmp[j] = i
		}
		// A stable pass on the first half yields the order of length 2k.
		countingSort(order, tmp, rank, cnt[:classes])
		classes = renumber(order, rank, tmp, func(i, j int) bool {
			return rank[i] == rank[j] && rank[(i+k)%n] == rank[(j+k)%n]
		})
		rank, tmp = tmp, rank
	}

	// Lay out each class in ascending offset order.
	countingSort(order, identity(tmp), rank, cnt[:classes])
	return order
}

// countingSort stably places src into dst keyed by key[src[j]].
// The cnt slice must cover all keys and is clobbered.
func countingSort(dst, src, key, cnt []int) {
	for i := range cnt {
		cnt[i] = 0
	}
	for _, i := range src {
		cnt[key[i]]++
	}
	var sum int
	for c, v := range cnt {
		cnt[c] = sum
		sum += v
	}
	for _, i := range src {
		dst[cnt[key[i]]] = i
		cnt[key[i]]++
	}
}

// renumber assigns dense ranks to the sorted order, starting a new class
// whenever equal reports that adjacent offsets differ, and returns the number
// of classes.
func renumber(order, rank, newRank []int, equal func(i, j int) bool) int {
	classes := 1
	newRank[order[0]] = 0
	for j := 1; j < len(order); j++ {
		if !equal(order[j-1], order[j]) {
			classes++
		}
		newRank[order[j]] = classes - 1
	}
	return classes
}

func identity(buf []int) []int {
	for i := range buf {
		buf[i] = i
	}
	return buf
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
