package rng

import (
	"fmt"

	"github.com/dep2p/go-kbucket/pkg/interfaces"
	"github.com/dep2p/go-kbucket/pkg/types"
)

// Sample 从 population 中无放回均匀抽取 n 个元素
//
// 使用部分 Fisher-Yates 洗牌，结果按抽取顺序返回，不修改 population。
// n == 0 时不消耗随机源；n 为负或大于 len(population) 时返回 ErrOutOfBounds。
func Sample[T any](src interfaces.RandomSource, n int, population []T) ([]T, error) {
	if n < 0 || n > len(population) {
		return nil, fmt.Errorf("%w: sample %d of %d", types.ErrOutOfBounds, n, len(population))
	}
	if n == 0 {
		return []T{}, nil
	}

	idx := make([]int, len(population))
	for i := range idx {
		idx[i] = i
	}

	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		j := i + src.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out = append(out, population[idx[i]])
	}
	return out, nil
}
