package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-kbucket/config"
	"github.com/dep2p/go-kbucket/pkg/interfaces"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

// TestModule_Provides 测试模块提供的类型
func TestModule_Provides(t *testing.T) {
	var (
		reporter interfaces.NormalizeReporter
		reg      *prometheus.Registry
	)

	app := fxtest.New(t,
		Module,
		fx.Populate(&reporter, &reg),
	)
	defer app.RequireStart().RequireStop()

	require.NotNil(t, reporter)
	require.NotNil(t, reg)
	_, ok := reporter.(*Reporter)
	assert.True(t, ok)

	reporter.ReportNormalize(interfaces.NormalizeStats{Filled: 1})
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	t.Log("✅ 模块提供 Reporter 与 Registry")
}

// TestModule_Disabled 测试禁用指标
func TestModule_Disabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Metrics.Enabled = false

	var reporter interfaces.NormalizeReporter
	app := fxtest.New(t,
		fx.Supply(cfg),
		Module,
		fx.Populate(&reporter),
	)
	defer app.RequireStart().RequireStop()

	assert.Equal(t, NopReporter{}, reporter)

	t.Log("✅ 禁用时提供 NopReporter")
}

// TestConfigFromUnified 测试统一配置转换
func TestConfigFromUnified(t *testing.T) {
	assert.Equal(t, DefaultConfig(), ConfigFromUnified(nil))

	cfg := config.NewConfig()
	cfg.Metrics.Namespace = "custom"
	got := ConfigFromUnified(cfg)
	assert.True(t, got.Enabled)
	assert.Equal(t, "custom", got.Namespace)

	t.Log("✅ 统一配置转换正确")
}
