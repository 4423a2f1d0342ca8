package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

// 日志环境变量
const (
	envLogLevel     = "KBUCKET_LOG_LEVEL"
	envLogFormat    = "KBUCKET_LOG_FORMAT"
	envLogAddSource = "KBUCKET_LOG_ADD_SOURCE"
)

// LogFormat 日志输出格式
type LogFormat int

const (
	// FormatText 文本格式（默认）
	FormatText LogFormat = iota
	// FormatJSON JSON 格式
	FormatJSON
)

// defaultComponentLevels 各组件未单独配置时的级别
//
// 指标模块每次注册都会输出，默认只保留警告。
func defaultComponentLevels() map[string]slog.Level {
	return map[string]slog.Level{
		"routing/normalize": slog.LevelInfo,
		"core/metrics":      slog.LevelWarn,
		"kbnorm/cmd":        slog.LevelInfo,
	}
}

// Config 日志配置
type Config struct {
	// DefaultLevel 未单独配置的子系统与组件使用的级别
	DefaultLevel slog.Level

	// SubsystemLevels 子系统（logger.Logger 的名称）与组件
	// （pkg/lib/log.Logger 的名称，如 "routing/normalize"）的级别
	SubsystemLevels map[string]slog.Level

	Format    LogFormat
	AddSource bool
}

// LevelForSubsystem 获取子系统的日志级别
func (c *Config) LevelForSubsystem(subsystem string) slog.Level {
	if level, ok := c.SubsystemLevels[subsystem]; ok {
		return level
	}
	return c.DefaultLevel
}

// LevelForComponent 查找组件的单独级别
//
// 组件名按 '/' 分段，从完整名称向上逐级匹配：
// "routing/normalize" 依次尝试 "routing/normalize"、"routing"。
// 没有任何匹配时返回 false，调用方沿用子系统级别。
func (c *Config) LevelForComponent(component string) (slog.Level, bool) {
	for name := component; name != ""; {
		if level, ok := c.SubsystemLevels[name]; ok {
			return level, true
		}
		i := strings.LastIndexByte(name, '/')
		if i < 0 {
			break
		}
		name = name[:i]
	}
	return 0, false
}

var (
	configCache *Config
	configOnce  sync.Once
)

// ConfigFromEnv 从环境变量解析配置（进程内只解析一次）
//
//   - KBUCKET_LOG_LEVEL: "名称=级别,...,默认级别"，
//     如 routing=debug,core/metrics=info,warn
//   - KBUCKET_LOG_FORMAT: text 或 json
//   - KBUCKET_LOG_ADD_SOURCE: true 或 false
func ConfigFromEnv() *Config {
	configOnce.Do(func() {
		configCache = parseConfig()
	})
	return configCache
}

func parseConfig() *Config {
	cfg := &Config{
		DefaultLevel:    slog.LevelInfo,
		SubsystemLevels: defaultComponentLevels(),
		Format:          FormatText,
	}

	if s := os.Getenv(envLogLevel); s != "" {
		parseLevelConfig(cfg, s)
	}

	if strings.EqualFold(os.Getenv(envLogFormat), "json") {
		cfg.Format = FormatJSON
	}

	if s := os.Getenv(envLogAddSource); s != "" {
		cfg.AddSource = s != "false" && s != "0"
	}

	return cfg
}

// parseLevelConfig 解析 KBUCKET_LOG_LEVEL
//
// 给出默认级别时，组件的内置级别不再生效，只保留显式列出的名称。
func parseLevelConfig(cfg *Config, levelStr string) {
	explicit := make(map[string]slog.Level)
	hasDefault := false

	for _, part := range strings.Split(levelStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, levelName, named := strings.Cut(part, "=")
		if !named {
			if level, ok := parseLevel(part); ok {
				cfg.DefaultLevel = level
				hasDefault = true
			}
			continue
		}

		if level, ok := parseLevel(strings.TrimSpace(levelName)); ok {
			explicit[strings.TrimSpace(name)] = level
		}
	}

	if hasDefault {
		cfg.SubsystemLevels = explicit
		return
	}
	for name, level := range explicit {
		cfg.SubsystemLevels[name] = level
	}
}

// parseLevel 解析日志级别名称
func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// ResetConfig 重置配置缓存（仅用于测试）
func ResetConfig() {
	configOnce = sync.Once{}
	configCache = nil
}
