package imp

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEachBand(t *testing.T) {
	for _, workers := range []int{1, 3, 4, 1000} {
		seen := make([]int, bigSize.Len())
		var mu sync.Mutex
		calls := 0
		eachBand(bigSize, newOptions([]Option{Workers(workers)}), func(start, end int) {
			mu.Lock()
			calls++
			mu.Unlock()
			for i := start; i < end; i++ {
				seen[i]++
			}
		})
		for i, n := range seen {
			if !assert.Equal(t, 1, n, "workers=%d pixel %d", workers, i) {
				break
			}
		}
		assert.LessOrEqual(t, calls, bigSize.Height, "workers=%d", workers)
	}
}

func TestEachBandSmallImage(t *testing.T) {
	d := Dimensions{Width: 4, Height: 4, MaxValue: 255}
	var ranges [][2]int
	eachBand(d, newOptions([]Option{Workers(8)}), func(start, end int) {
		ranges = append(ranges, [2]int{start, end})
	})
	assert.Equal(t, [][2]int{{0, 16}}, ranges)
}

func TestForEachBandError(t *testing.T) {
	boom := errors.New("boom")
	err := forEachBand(bigSize, newOptions([]Option{Workers(4)}), func(band, _, _ int) error {
		if band == 2 {
			return boom
		}
		return nil
	})
	assert.Equal(t, boom, err)
}
