// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

// Repeats generates size bytes of data where a large bulk of the data is a
// copy from some distance ago. Since the source data is mostly random, sorted
// rotations share long common prefixes, which is the worst case for
// comparison based suffix sorting.
func Repeats(seed, size int) []byte {
	var b []byte
	r := NewRand(seed)

	randLen := func() int {
		switch p := r.Intn(100); {
		case p < 15: // 4..8
			return 4 + r.Intn(4)
		case p < 30: // 8..16
			return 8 + r.Intn(8)
		case p < 45: // 16..32
			return 16 + r.Intn(16)
		case p < 60: // 32..64
			return 32 + r.Intn(32)
		case p < 75: // 64..128
			return 64 + r.Intn(64)
		case p < 90: // 128..256
			return 128 + r.Intn(128)
		default: // 256..512
			return 256 + r.Intn(256)
		}
	}

	randDist := func() (d int) {
		for d == 0 || d > len(b) {
			switch p := r.Intn(100); {
			case p < 10: // 1..2
				d = 1
			case p < 20: // 2..4
				d = 2 + r.Intn(2)
			case p < 30: // 4..8
				d = 4 + r.Intn(4)
			case p < 40: // 8..16
				d = 8 + r.Intn(8)
			case p < 50: // 16..32
				d = 16 + r.Intn(16)
			case p < 60: // 32..256
				d = 32 + r.Intn(224)
			case p < 80: // 256..4096
				d = 256 + r.Intn(3840)
			default: // 4096..32768
				d = 4096 + r.Intn(28672)
			}
		}
		return d
	}

	writeRand := func(l int) {
		b = append(b, r.Bytes(l)...)
	}
	writeCopy := func(d, l int) {
		for i := 0; i < l; i++ {
			b = append(b, b[len(b)-d])
		}
	}

	if size <= 0 {
		return nil
	}
	writeRand(randLen())
	for len(b) < size {
		switch p := r.Intn(10); {
		case p < 1:
			// Generate random new data.
			writeRand(randLen())
		case p < 9:
			// Write a long distance copy.
			d, l := randDist(), randLen()
			for d <= l && d < len(b) {
				d, l = randDist(), randLen()
			}
			writeCopy(d, l)
		default:
			// Write a possibly short distance copy.
			writeCopy(randDist(), randLen())
		}
	}
	return b[:size]
}
