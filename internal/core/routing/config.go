package routing

import (
	"fmt"
	"math"

	"github.com/dep2p/go-kbucket/config"
	"github.com/dep2p/go-kbucket/pkg/interfaces"
	"github.com/dep2p/go-kbucket/pkg/types"
)

// CapacityFunc 根据正在规范化的桶索引返回子桶容量
type CapacityFunc func(bucketIndex int) int

// DoublingCapacity 子桶容量 2^i
//
// 对应 Kademlia 的容量翻倍约定；i 过大时饱和到 math.MaxInt。
func DoublingCapacity(bucketIndex int) int {
	if bucketIndex >= 62 {
		return math.MaxInt
	}
	if bucketIndex < 0 {
		return 1
	}
	return 1 << bucketIndex
}

// FixedCapacity 返回固定容量的 CapacityFunc
func FixedCapacity(size int) CapacityFunc {
	return func(int) int {
		return size
	}
}

// Config 规范化配置
type Config struct {
	// BucketSize 目标桶容量 K
	BucketSize int

	// LocalID 本地节点标识符
	LocalID string

	// Policy 前序候选池选择策略
	Policy interfaces.SelectionPolicy

	// SubBucketCapacity 子桶容量函数
	SubBucketCapacity CapacityFunc

	// KeyCacheSize 标识符解析缓存容量，0 表示不缓存
	KeyCacheSize int
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		BucketSize:        4,
		LocalID:           "0011",
		Policy:            interfaces.PolicyUniformRandom,
		SubBucketCapacity: DoublingCapacity,
		KeyCacheSize:      1024,
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.BucketSize <= 0 {
		return fmt.Errorf("%w: bucket size must be positive", ErrInvalidConfig)
	}

	if _, err := types.ParseKey(c.LocalID); err != nil {
		return fmt.Errorf("%w: local id: %w", ErrInvalidConfig, err)
	}

	switch c.Policy {
	case interfaces.PolicyUniformRandom, interfaces.PolicyClosestFirst:
	default:
		return fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, c.Policy)
	}

	if c.SubBucketCapacity == nil {
		return fmt.Errorf("%w: sub-bucket capacity function is nil", ErrInvalidConfig)
	}

	if c.KeyCacheSize < 0 {
		return fmt.Errorf("%w: key cache size must not be negative", ErrInvalidConfig)
	}

	return nil
}

// ConfigFromUnified 从统一配置创建规范化配置
func ConfigFromUnified(cfg *config.Config) *Config {
	if cfg == nil {
		return DefaultConfig()
	}

	rc := cfg.Routing
	c := &Config{
		BucketSize:        rc.BucketSize,
		LocalID:           rc.LocalID,
		Policy:            interfaces.SelectionPolicy(rc.Policy),
		SubBucketCapacity: DoublingCapacity,
		KeyCacheSize:      rc.KeyCacheSize,
	}
	if rc.SubBucket.Mode == config.SubBucketFixed {
		c.SubBucketCapacity = FixedCapacity(rc.SubBucket.Size)
	}
	return c
}
