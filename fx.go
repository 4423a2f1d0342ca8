package kbucket

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-kbucket/config"
	"github.com/dep2p/go-kbucket/internal/core/metrics"
	"github.com/dep2p/go-kbucket/internal/core/routing"
	"github.com/dep2p/go-kbucket/pkg/lib/log"
)

var fxLogger = log.Logger("kbucket/fx")

// New 创建规范化器
//
// 通过 Option 函数配置；未设置的参数取默认值（K = 4，本地标识符 0011，
// uniform-random 策略，子桶容量 2^i）。
//
//	n, err := kbucket.New(
//	    kbucket.WithPreset("kademlia"),
//	    kbucket.WithLocalID(localBits),
//	)
func New(opts ...Option) (*Normalizer, error) {
	n, _, err := NewWithRegistry(opts...)
	return n, err
}

// NewWithRegistry 创建规范化器，同时返回其指标注册表
//
// 指标禁用时注册表为空。
func NewWithRegistry(opts ...Option) (*Normalizer, *prometheus.Registry, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, nil, fmt.Errorf("apply option: %w", err)
		}
	}

	cfg, err := o.toConfig()
	if err != nil {
		return nil, nil, err
	}

	var (
		n   *Normalizer
		reg *prometheus.Registry
	)
	app := buildFxApp(cfg, o, &n, &reg)
	if err := app.Err(); err != nil {
		return nil, nil, fmt.Errorf("build fx app: %w", err)
	}

	fxLogger.Debug("规范化器已就绪",
		"k", n.BucketSize(),
		"policy", n.Policy(),
		"metrics", cfg.Metrics.Enabled)
	return n, reg, nil
}

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：metrics → routing。
// 只做依赖装配，不启动应用。
func buildFxApp(cfg *config.Config, o *options, n **Normalizer, reg **prometheus.Registry) *fx.App {
	routingCfg := routing.ConfigFromUnified(cfg)
	if o.capacity != nil {
		routingCfg.SubBucketCapacity = o.capacity
	}

	return fx.New(
		fx.Supply(cfg),
		fx.Supply(routingCfg),

		metrics.Module,
		routing.Module,

		fx.Populate(n, reg),

		// 禁用 Fx 日志输出（避免干扰用户日志）
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)
}
