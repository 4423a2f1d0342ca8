// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON 加载配置
//   - 支持预设配置（reference/kademlia/deterministic）
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Routing.BucketSize = 20
//
//	// 应用预设到现有配置
//	config.ApplyPreset(cfg, "kademlia")
//
//	// 从 JSON 加载
//	cfg, err := config.FromJSON(data)
package config

import "go.uber.org/multierr"

// Config 是 go-kbucket 的完整配置结构
//
// 配置按照功能模块组织：
//   - Routing: K 桶规范化参数
//   - Metrics: 规范化指标
type Config struct {
	// Routing 路由表规范化配置
	Routing RoutingConfig `json:"routing"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`
}

// NewConfig 创建默认配置
//
// 默认 K = 4，本地节点 ID = 0011。
func NewConfig() *Config {
	return &Config{
		Routing: DefaultRoutingConfig(),
		Metrics: DefaultMetricsConfig(),
	}
}

// Validate 验证配置的有效性
//
// 检查所有子配置，一次性返回全部问题。
func (c *Config) Validate() error {
	return multierr.Combine(
		c.Routing.Validate(),
		c.Metrics.Validate(),
	)
}

// Clone 深拷贝配置
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
