package rng

import (
	"math/rand"

	"github.com/seehuhn/mt19937"

	"github.com/dep2p/go-kbucket/pkg/interfaces"
)

// 确保实现接口
var _ interfaces.RandomSource = (*rand.Rand)(nil)

// NewSeeded 创建以 seed 初始化的可复现随机源
func NewSeeded(seed uint64) *rand.Rand {
	mt := mt19937.New()
	mt.Seed(int64(seed))
	return rand.New(mt)
}

// NewSeededFromSlice 以多段种子初始化随机源
//
// 用于从哈希等较长的种子材料派生随机源。
func NewSeededFromSlice(key []uint64) *rand.Rand {
	mt := mt19937.New()
	mt.SeedFromSlice(key)
	return rand.New(mt)
}

// CountingSource 统计 Intn 调用次数的随机源包装
//
// 规范化用它统计随机抽取次数，测试用它断言未消耗随机性。
type CountingSource struct {
	src   interfaces.RandomSource
	draws int
}

// NewCountingSource 包装随机源
func NewCountingSource(src interfaces.RandomSource) *CountingSource {
	return &CountingSource{src: src}
}

// Intn 实现 interfaces.RandomSource
func (c *CountingSource) Intn(n int) int {
	c.draws++
	return c.src.Intn(n)
}

// Draws 返回已发生的抽取次数
func (c *CountingSource) Draws() int {
	return c.draws
}
