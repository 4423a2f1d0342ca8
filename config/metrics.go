package config

import "errors"

// MetricsConfig 指标配置
type MetricsConfig struct {
	// Enabled 是否启用指标收集
	Enabled bool `json:"enabled"`

	// Namespace Prometheus 指标命名空间
	Namespace string `json:"namespace"`
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   true,
		Namespace: "kbucket",
	}
}

// Validate 验证指标配置
func (c MetricsConfig) Validate() error {
	if c.Enabled && c.Namespace == "" {
		return errors.New("metrics.namespace must not be empty when metrics are enabled")
	}
	return nil
}
