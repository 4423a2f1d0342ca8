package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dep2p/go-kbucket/pkg/interfaces"
)

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保留默认值。
//
// 示例 JSON:
//
//	{
//	  "routing": {"bucket_size": 20, "local_id": "0011", "policy": "closest-first"},
//	  "metrics": {"enabled": false}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// LoadFile 从 JSON 文件加载配置
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: 用户指定的配置文件路径是预期行为
	if err != nil {
		return nil, err
	}
	return FromJSON(data)
}

// ApplyPreset 应用预设配置
//
// 支持的预设：
//   - "reference": 参考参数（K = 4，4 位标识符）
//   - "kademlia": Kademlia 论文参数（K = 20）
//   - "deterministic": 前序候选池使用 closest-first，结果只在子桶采样时依赖随机源
func ApplyPreset(cfg *Config, presetName string) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	switch presetName {
	case "reference":
		cfg.Routing.BucketSize = 4
		cfg.Routing.LocalID = "0011"
		cfg.Routing.SubBucket = SubBucketConfig{Mode: SubBucketDoubling}
	case "kademlia":
		cfg.Routing.BucketSize = 20
	case "deterministic":
		cfg.Routing.Policy = string(interfaces.PolicyClosestFirst)
	case "":
		// 空预设，不做任何操作
	default:
		return fmt.Errorf("unknown preset: %s", presetName)
	}
	return nil
}

// IsValidPreset 检查预设名称是否有效
func IsValidPreset(name string) bool {
	switch name {
	case "reference", "kademlia", "deterministic":
		return true
	default:
		return false
	}
}
