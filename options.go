package kbucket

import (
	"fmt"

	"github.com/dep2p/go-kbucket/config"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 统一配置（WithConfig）
	config *config.Config

	// 预设名称
	preset string

	// 覆盖项，nil 表示未设置
	bucketSize *int
	localID    *string
	policy     *SelectionPolicy
	capacity   CapacityFunc
	metrics    *bool
}

func newOptions() *options {
	return &options{}
}

// toConfig 合并选项，得到统一配置
//
// 优先级：Option 覆盖项 > WithConfig > 预设 > 默认值。
func (o *options) toConfig() (*config.Config, error) {
	var cfg *config.Config
	if o.config != nil {
		cfg = o.config.Clone()
	} else {
		cfg = config.NewConfig()
		if err := config.ApplyPreset(cfg, o.preset); err != nil {
			return nil, err
		}
	}

	if o.bucketSize != nil {
		cfg.Routing.BucketSize = *o.bucketSize
	}
	if o.localID != nil {
		cfg.Routing.LocalID = *o.localID
	}
	if o.policy != nil {
		cfg.Routing.Policy = string(*o.policy)
	}
	if o.metrics != nil {
		cfg.Metrics.Enabled = *o.metrics
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// ============================================================================
//                              配置选项
// ============================================================================

// WithPreset 使用预设配置
//
// 支持的预设：
//   - "reference": K = 4，本地标识符 0011
//   - "kademlia": K = 20
//   - "deterministic": 前序候选池使用 closest-first
//
// 与 WithConfig 同时使用时预设被忽略。
func WithPreset(name string) Option {
	return func(o *options) error {
		if !config.IsValidPreset(name) {
			return fmt.Errorf("未知预设: %q", name)
		}
		o.preset = name
		return nil
	}
}

// WithConfig 使用统一配置
//
// 配置会被复制，之后修改 cfg 不影响规范化器。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return fmt.Errorf("配置不能为空")
		}
		o.config = cfg
		return nil
	}
}

// ============================================================================
//                              规范化选项
// ============================================================================

// WithBucketSize 设置目标桶容量 K
//
//	kbucket.New(kbucket.WithBucketSize(20))
func WithBucketSize(k int) Option {
	return func(o *options) error {
		if k <= 0 {
			return fmt.Errorf("桶容量必须为正数: %d", k)
		}
		o.bucketSize = &k
		return nil
	}
}

// WithLocalID 设置本地节点标识符（'0'/'1' 比特串）
//
// 路由表中所有需要计算距离的标识符必须与它等宽。
func WithLocalID(id string) Option {
	return func(o *options) error {
		if id == "" {
			return fmt.Errorf("本地标识符不能为空")
		}
		o.localID = &id
		return nil
	}
}

// WithPolicy 设置前序候选池选择策略
func WithPolicy(policy SelectionPolicy) Option {
	return func(o *options) error {
		switch policy {
		case PolicyUniformRandom, PolicyClosestFirst:
		default:
			return fmt.Errorf("未知选择策略: %q", policy)
		}
		o.policy = &policy
		return nil
	}
}

// WithSubBucketCapacity 设置子桶容量函数（默认 DoublingCapacity）
//
//	kbucket.New(kbucket.WithSubBucketCapacity(kbucket.FixedCapacity(3)))
func WithSubBucketCapacity(fn CapacityFunc) Option {
	return func(o *options) error {
		if fn == nil {
			return fmt.Errorf("子桶容量函数不能为空")
		}
		o.capacity = fn
		return nil
	}
}

// WithMetrics 启用或禁用 Prometheus 指标
func WithMetrics(enable bool) Option {
	return func(o *options) error {
		o.metrics = &enable
		return nil
	}
}
