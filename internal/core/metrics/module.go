package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-kbucket/config"
	"github.com/dep2p/go-kbucket/pkg/interfaces"
	"github.com/dep2p/go-kbucket/pkg/lib/log"
)

var logger = log.Logger("core/metrics")

// Config 指标配置
type Config struct {
	// Enabled 是否启用指标收集
	Enabled bool

	// Namespace Prometheus 指标命名空间
	Namespace string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Namespace: "kbucket",
	}
}

// ConfigFromUnified 从统一配置创建指标配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		Enabled:   cfg.Metrics.Enabled,
		Namespace: cfg.Metrics.Namespace,
	}
}

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Result Metrics 导出结果
type Result struct {
	fx.Out

	Registry *prometheus.Registry
	Reporter interfaces.NormalizeReporter
}

// Module 是 metrics 的 Fx 模块
var Module = fx.Module("metrics",
	fx.Provide(
		NewFromParams,
	),
)

// NewFromParams 从参数创建上报器
//
// 指标禁用时提供 NopReporter，注册表仍然可用但为空。
func NewFromParams(p Params) Result {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	reg := prometheus.NewRegistry()

	if !cfg.Enabled {
		logger.Debug("规范化指标已禁用")
		return Result{Registry: reg, Reporter: NopReporter{}}
	}

	return Result{
		Registry: reg,
		Reporter: NewReporter(cfg.Namespace, reg),
	}
}
