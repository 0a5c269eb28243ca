package raster

import (
	"math"
	"runtime"
	"sync"
)

const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func from8(v uint8) float64 {
	return float64(v) / 255
}

// parallelRows runs fn over disjoint row ranges [y0,y1) of a height h image.
func parallelRows(h int, fn func(y0, y1 int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > h {
		workers = h
	}
	if workers <= 1 {
		fn(0, h)
		return
	}
	chunk := (h + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < h; y0 += chunk {
		y1 := y0 + chunk
		if y1 > h {
			y1 = h
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			fn(y0, y1)
		}(y0, y1)
	}
	wg.Wait()
}
