package main

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dep2p/go-kbucket/config"
	"github.com/dep2p/go-kbucket/pkg/lib/log"
)

// logLevels -log-level 可选值
var logLevels = map[string]slog.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

// parseSeedKey 将十六进制种子材料按 8 字节大端切分为 uint64 序列
//
// 末段不足 8 字节时按其实际长度解释。
func parseSeedKey(s string) ([]uint64, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("empty seed key")
	}

	key := make([]uint64, 0, (len(raw)+7)/8)
	for len(raw) > 0 {
		var word [8]byte
		n := copy(word[8-min(8, len(raw)):], raw)
		key = append(key, binary.BigEndian.Uint64(word[:]))
		raw = raw[n:]
	}
	return key, nil
}

// ============================================================================
//                              环境变量（CLI 专用）
// ============================================================================

// envConfig 从环境变量读取的覆盖项，空值表示未设置
type envConfig struct {
	preset     string
	bucketSize string
	localID    string
	policy     string
	seed       string
}

// readEnv 读取 KBUCKET_* 环境变量
func readEnv() envConfig {
	return envConfig{
		preset:     os.Getenv(config.EnvPrefix + config.EnvPreset),
		bucketSize: os.Getenv(config.EnvPrefix + config.EnvBucketSize),
		localID:    os.Getenv(config.EnvPrefix + config.EnvLocalID),
		policy:     os.Getenv(config.EnvPrefix + config.EnvPolicy),
		seed:       os.Getenv(config.EnvPrefix + config.EnvSeed),
	}
}

// applyEnvOverrides 应用环境变量覆盖配置
//
// 环境变量优先级高于配置文件，但低于命令行参数。
// 支持的环境变量（均使用 KBUCKET_ 前缀）：
//   - KBUCKET_PRESET: 预设名称（在 buildConfig 中处理）
//   - KBUCKET_BUCKET_SIZE: 目标桶容量 K
//   - KBUCKET_LOCAL_ID: 本地节点标识符
//   - KBUCKET_POLICY: 前序候选池选择策略
//   - KBUCKET_SEED: 随机种子
//
// 无法解析的数值被忽略并记录警告。
func applyEnvOverrides(cfg *config.Config, env envConfig) {
	// KBUCKET_BUCKET_SIZE
	if env.bucketSize != "" {
		if k, err := strconv.Atoi(env.bucketSize); err == nil {
			cfg.Routing.BucketSize = k
		} else {
			cliLogger.Warn("忽略无效的环境变量", "name", config.EnvPrefix+config.EnvBucketSize, "value", env.bucketSize)
		}
	}

	// KBUCKET_LOCAL_ID
	if env.localID != "" {
		cfg.Routing.LocalID = env.localID
	}

	// KBUCKET_POLICY
	if env.policy != "" {
		cfg.Routing.Policy = env.policy
	}

	// KBUCKET_SEED
	if env.seed != "" {
		if seed, err := strconv.ParseUint(env.seed, 10, 64); err == nil {
			cfg.Routing.Seed = seed
		} else {
			cliLogger.Warn("忽略无效的环境变量", "name", config.EnvPrefix+config.EnvSeed, "value", env.seed)
		}
	}
}
