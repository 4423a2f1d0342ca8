package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/dep2p/go-kbucket/pkg/interfaces"
	"github.com/dep2p/go-kbucket/pkg/types"
)

// TestNewConfig 测试创建默认配置
func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.NotNil(t, cfg)

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.Routing.BucketSize)
	assert.Equal(t, "0011", cfg.Routing.LocalID)
	assert.Equal(t, string(interfaces.PolicyUniformRandom), cfg.Routing.Policy)
	assert.Equal(t, SubBucketDoubling, cfg.Routing.SubBucket.Mode)
	assert.True(t, cfg.Metrics.Enabled)

	t.Log("✅ NewConfig 测试通过")
}

// TestRoutingConfig_Validate 测试路由配置验证
func TestRoutingConfig_Validate(t *testing.T) {
	t.Run("InvalidBucketSize", func(t *testing.T) {
		cfg := DefaultRoutingConfig()
		cfg.BucketSize = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("MalformedLocalID", func(t *testing.T) {
		cfg := DefaultRoutingConfig()
		cfg.LocalID = "00x1"
		assert.ErrorIs(t, cfg.Validate(), types.ErrMalformedIdentifier)
	})

	t.Run("UnknownPolicy", func(t *testing.T) {
		cfg := DefaultRoutingConfig()
		cfg.Policy = "first-come"
		assert.Error(t, cfg.Validate())
	})

	t.Run("FixedWithoutSize", func(t *testing.T) {
		cfg := DefaultRoutingConfig()
		cfg.SubBucket = SubBucketConfig{Mode: SubBucketFixed}
		assert.Error(t, cfg.Validate())

		cfg.SubBucket.Size = 2
		assert.NoError(t, cfg.Validate())
	})

	t.Run("UnknownMode", func(t *testing.T) {
		cfg := DefaultRoutingConfig()
		cfg.SubBucket.Mode = "tripling"
		assert.Error(t, cfg.Validate())
	})

	t.Log("✅ RoutingConfig.Validate 测试通过")
}

// TestConfig_ValidateAggregates 测试一次返回全部错误
func TestConfig_ValidateAggregates(t *testing.T) {
	cfg := NewConfig()
	cfg.Routing.BucketSize = -1
	cfg.Routing.Policy = "nope"
	cfg.Routing.KeyCacheSize = -5
	cfg.Metrics.Namespace = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)

	t.Log("✅ 校验错误被聚合")
}

// TestFromJSON 测试 JSON 加载保留默认值
func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON([]byte(`{"routing": {"bucket_size": 20, "policy": "closest-first"}}`))
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Routing.BucketSize)
	assert.Equal(t, string(interfaces.PolicyClosestFirst), cfg.Routing.Policy)
	assert.Equal(t, "0011", cfg.Routing.LocalID, "未指定字段保留默认值")
	assert.True(t, cfg.Metrics.Enabled)

	_, err = FromJSON([]byte(`{"routing": `))
	assert.Error(t, err)
}

// TestLoadFile 测试从文件加载
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kbucket.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"routing": {"local_id": "10101010"}, "metrics": {"enabled": false}}`), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "10101010", cfg.Routing.LocalID)
	assert.False(t, cfg.Metrics.Enabled)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

// TestApplyPreset 测试预设
func TestApplyPreset(t *testing.T) {
	cfg := NewConfig()

	require.NoError(t, ApplyPreset(cfg, "kademlia"))
	assert.Equal(t, 20, cfg.Routing.BucketSize)

	require.NoError(t, ApplyPreset(cfg, "deterministic"))
	assert.Equal(t, string(interfaces.PolicyClosestFirst), cfg.Routing.Policy)

	require.NoError(t, ApplyPreset(cfg, "reference"))
	assert.Equal(t, 4, cfg.Routing.BucketSize)

	require.NoError(t, ApplyPreset(cfg, ""))
	assert.Error(t, ApplyPreset(cfg, "mobile"))
	assert.Error(t, ApplyPreset(nil, "reference"))

	assert.True(t, IsValidPreset("kademlia"))
	assert.False(t, IsValidPreset("desktop"))
}

// TestClone 测试配置拷贝互不影响
func TestClone(t *testing.T) {
	cfg := NewConfig()
	clone := cfg.Clone()
	clone.Routing.BucketSize = 99

	assert.Equal(t, 4, cfg.Routing.BucketSize)
	assert.Nil(t, (*Config)(nil).Clone())
}
