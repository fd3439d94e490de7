package utils

import "sync"

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	if ParallelDegree < 1 {
		ParallelDegree = 1
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(bn int) (kMax int) {
	if bn == -1 {
		kMax = pm.MaxIndex
		return
	}
	var (
		k1, k2 = pm.GetBucketRange(bn)
	)
	kMax = k2 - k1
	return
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// This routine splits one dimension into c.ParallelDegree pieces, with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

// Run calls f once per non empty bucket in its own goroutine and waits for
// all of them.
func (pm *PartitionMap) Run(f func(bucket, kMin, kMax int)) {
	var (
		wg = sync.WaitGroup{}
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		if pm.GetBucketDimension(np) == 0 {
			continue
		}
		wg.Add(1)
		go func(np int) {
			kMin, kMax := pm.GetBucketRange(np)
			f(np, kMin, kMax)
			wg.Done()
		}(np)
	}
	wg.Wait()
}
