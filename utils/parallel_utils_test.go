package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Test PartitionMap
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				maxK := pm.GetBucketDimension(np)
				histo[maxK]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 10000; n++ {
			// for n := 64; n < 10000; n++ {
			// n := 64
			// {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			// fmt.Printf("keys = %v, histo[%d] = %v\n", keys, n, histo)
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Run visits every index exactly once
		for _, degree := range []int{0, 1, 3, 9, 16} {
			var (
				pm     = NewPartitionMap(degree, 9)
				visits = make([]int, 9)
			)
			pm.Run(func(bucket, kMin, kMax int) {
				assert.Less(t, kMin, kMax)
				for k := kMin; k < kMax; k++ {
					visits[k]++
				}
			})
			for k := range visits {
				assert.Equal(t, 1, visits[k])
			}
		}
	}
}
