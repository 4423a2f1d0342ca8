package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/dep2p/go-kbucket/pkg/interfaces"
	"github.com/dep2p/go-kbucket/pkg/types"
)

// 子桶容量模式
const (
	// SubBucketDoubling 子桶容量 = 2^i（i 为正在规范化的桶索引）
	SubBucketDoubling = "doubling"

	// SubBucketFixed 子桶容量固定为 SubBucketConfig.Size
	SubBucketFixed = "fixed"
)

// RoutingConfig 路由表规范化配置
type RoutingConfig struct {
	// BucketSize 目标桶容量 K
	BucketSize int `json:"bucket_size"`

	// LocalID 本地节点标识符（'0'/'1' 比特串），决定距离度量的原点
	LocalID string `json:"local_id"`

	// Policy 前序候选池超出需求时的选择策略
	//   - uniform-random: 无放回均匀采样（默认）
	//   - closest-first: 取距离本地节点最近的记录
	Policy string `json:"policy"`

	// SubBucket 后续桶溢出时的子桶划分
	SubBucket SubBucketConfig `json:"sub_bucket"`

	// KeyCacheSize 已解析标识符的 LRU 缓存容量，0 表示不缓存
	KeyCacheSize int `json:"key_cache_size"`

	// Seed 命令行工具的默认随机种子
	Seed uint64 `json:"seed"`
}

// SubBucketConfig 子桶配置
type SubBucketConfig struct {
	// Mode 容量模式：doubling 或 fixed
	Mode string `json:"mode"`

	// Size fixed 模式下的子桶容量
	Size int `json:"size,omitempty"`
}

// DefaultRoutingConfig 返回默认路由配置
func DefaultRoutingConfig() RoutingConfig {
	return RoutingConfig{
		BucketSize:   4,
		LocalID:      "0011",
		Policy:       string(interfaces.PolicyUniformRandom),
		SubBucket:    SubBucketConfig{Mode: SubBucketDoubling},
		KeyCacheSize: 1024,
		Seed:         0,
	}
}

// Validate 验证路由配置
func (c RoutingConfig) Validate() error {
	var err error

	if c.BucketSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("routing.bucket_size must be positive, got %d", c.BucketSize))
	}

	if _, perr := types.ParseKey(c.LocalID); perr != nil {
		err = multierr.Append(err, fmt.Errorf("routing.local_id: %w", perr))
	}

	switch interfaces.SelectionPolicy(c.Policy) {
	case interfaces.PolicyUniformRandom, interfaces.PolicyClosestFirst:
	default:
		err = multierr.Append(err, fmt.Errorf("routing.policy: unknown policy %q", c.Policy))
	}

	switch c.SubBucket.Mode {
	case SubBucketDoubling:
	case SubBucketFixed:
		if c.SubBucket.Size <= 0 {
			err = multierr.Append(err, errors.New("routing.sub_bucket.size must be positive in fixed mode"))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("routing.sub_bucket.mode: unknown mode %q", c.SubBucket.Mode))
	}

	if c.KeyCacheSize < 0 {
		err = multierr.Append(err, errors.New("routing.key_cache_size must not be negative"))
	}

	return err
}
