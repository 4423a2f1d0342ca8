// Package interfaces 定义 go-kbucket 公共接口
//
// 本文件定义路由表规范化服务接口。
package interfaces

import "github.com/dep2p/go-kbucket/pkg/types"

// TableSnapshot 只读路由表快照
type TableSnapshot interface {
	// Len 返回桶数量
	Len() int

	// Records 返回桶 i 的记录副本
	Records(i int) []types.Record
}

// SelectionPolicy 前序候选池超出需求时的选择策略名称
type SelectionPolicy string

const (
	// PolicyUniformRandom 均匀随机选择
	PolicyUniformRandom SelectionPolicy = "uniform-random"

	// PolicyClosestFirst 按到本地节点的 XOR 距离优先选择最近的
	PolicyClosestFirst SelectionPolicy = "closest-first"
)
