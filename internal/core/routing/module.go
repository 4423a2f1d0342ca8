package routing

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-kbucket/config"
	"github.com/dep2p/go-kbucket/pkg/interfaces"
	"github.com/dep2p/go-kbucket/pkg/lib/log"
)

// Module 路由表规范化 Fx 模块
var Module = fx.Module("routing",
	fx.Provide(
		NewFromParams,
	),
)

// Params 规范化器依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config               `optional:"true"`
	Config     *Config                      `optional:"true"` // 直接指定时优先于统一配置
	Reporter   interfaces.NormalizeReporter `optional:"true"`
}

// NewFromParams 从 Fx 参数创建规范化器
func NewFromParams(p Params) (*Normalizer, error) {
	cfg := p.Config
	if cfg == nil {
		cfg = ConfigFromUnified(p.UnifiedCfg)
	}

	n, err := NewNormalizer(cfg, p.Reporter)
	if err != nil {
		return nil, err
	}

	logger.Info("规范化器已创建",
		"k", n.k,
		"localID", log.TruncateID(n.localID, 16),
		"policy", n.policy)
	return n, nil
}
