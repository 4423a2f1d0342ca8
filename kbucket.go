package kbucket

import (
	"io"
	"math/rand"

	"github.com/dep2p/go-kbucket/internal/core/routing"
	"github.com/dep2p/go-kbucket/internal/core/rng"
	"github.com/dep2p/go-kbucket/pkg/interfaces"
	"github.com/dep2p/go-kbucket/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              版本信息
// ════════════════════════════════════════════════════════════════════════════

// Version 当前版本
const Version = "v0.1.0"

// BuildInfo 构建信息（通过 ldflags 注入）
var (
	// GitCommit Git 提交哈希
	GitCommit string

	// BuildDate 构建日期
	BuildDate string
)

// VersionInfo 返回完整版本信息字符串
func VersionInfo() string {
	info := "go-kbucket " + Version
	if GitCommit != "" {
		info += " (" + GitCommit[:min(8, len(GitCommit))] + ")"
	}
	if BuildDate != "" {
		info += " built " + BuildDate
	}
	return info
}

// ════════════════════════════════════════════════════════════════════════════
//                              类型别名
// ════════════════════════════════════════════════════════════════════════════

type (
	// Normalizer K 桶规范化器
	Normalizer = routing.Normalizer

	// Table 路由表快照
	Table = routing.Table

	// Bucket K 桶
	Bucket = routing.Bucket

	// Record 路由记录
	Record = types.Record

	// SelectionPolicy 前序候选池选择策略
	SelectionPolicy = interfaces.SelectionPolicy

	// RandomSource 随机源
	RandomSource = interfaces.RandomSource

	// NormalizeStats 单次规范化统计
	NormalizeStats = interfaces.NormalizeStats

	// CapacityFunc 子桶容量函数
	CapacityFunc = routing.CapacityFunc
)

// 选择策略
const (
	// PolicyUniformRandom 前序候选池超量时均匀随机采样
	PolicyUniformRandom = interfaces.PolicyUniformRandom

	// PolicyClosestFirst 前序候选池超量时取距离本地节点最近的记录
	PolicyClosestFirst = interfaces.PolicyClosestFirst
)

// ════════════════════════════════════════════════════════════════════════════
//                              便捷函数
// ════════════════════════════════════════════════════════════════════════════

// NewTable 创建空路由表
func NewTable() *Table {
	return routing.NewTable()
}

// NewTableWithRecord 创建只含桶 0 及一条记录的路由表
func NewTableWithRecord(id, addr string) *Table {
	return routing.NewTableWithRecord(id, addr)
}

// NewBucket 创建空桶
func NewBucket() Bucket {
	return routing.NewBucket()
}

// NewSeededSource 创建以 seed 初始化的可复现随机源
//
// 相同种子、相同输入、相同配置时规范化结果完全相同。
func NewSeededSource(seed uint64) *rand.Rand {
	return rng.NewSeeded(seed)
}

// NewSeededSourceFromKey 以多段种子材料创建可复现随机源
//
// 适合从哈希摘要等长于 64 位的种子派生随机源。
func NewSeededSourceFromKey(key []uint64) *rand.Rand {
	return rng.NewSeededFromSlice(key)
}

// ReadTable 读取路由表（JSON 快照或 "桶 标识符 地址" 三元组文本）
func ReadTable(r io.Reader) (*Table, error) {
	return routing.ReadTable(r)
}

// WriteTriples 以三元组文本写出路由表
func WriteTriples(w io.Writer, t *Table) error {
	return routing.WriteTriples(w, t)
}

// DoublingCapacity 子桶容量 2^i（默认）
func DoublingCapacity(bucketIndex int) int {
	return routing.DoublingCapacity(bucketIndex)
}

// FixedCapacity 固定容量的子桶
func FixedCapacity(size int) CapacityFunc {
	return routing.FixedCapacity(size)
}
