// Package logger 提供 go-kbucket 的统一日志系统
//
// 基于标准库 log/slog，支持：
//   - 按子系统配置日志级别
//   - 环境变量配置（KBUCKET_LOG_LEVEL, KBUCKET_LOG_FORMAT）
//   - 结构化日志
//
// 命令行入口通过 Install 把子系统 Logger 设为 slog 默认 Logger，
// 组件侧的 pkg/lib/log.LazyLogger 随之输出到同一个 Handler。
//
// 环境变量配置:
//
//	# 规范化组件为 debug，其余为 warn
//	KBUCKET_LOG_LEVEL=routing/normalize=debug,warn
//
//	# 只打开指标模块的 info，其余组件保持内置级别
//	KBUCKET_LOG_LEVEL=core/metrics=info
//
//	# 使用 JSON 格式输出
//	KBUCKET_LOG_FORMAT=json
package logger

import (
	"io"
	"log/slog"
	"sync"
)

var (
	// loggers 缓存各子系统的 Logger
	loggers sync.Map // map[string]*slog.Logger

	// handlers 缓存各子系统的 Handler（用于动态调整级别）
	handlers sync.Map // map[string]*subsystemHandler
)

// Logger 获取指定子系统的 Logger
//
// Logger 会根据 KBUCKET_LOG_LEVEL 环境变量配置日志级别。
// 同一子系统多次调用会返回相同的 Logger 实例。
func Logger(subsystem string) *slog.Logger {
	if l, ok := loggers.Load(subsystem); ok {
		return l.(*slog.Logger)
	}

	cfg := ConfigFromEnv()
	level := cfg.LevelForSubsystem(subsystem)

	handler := newHandler(subsystem, level, cfg.Format)
	logger := slog.New(handler)

	actual, loaded := loggers.LoadOrStore(subsystem, logger)
	if !loaded {
		handlers.Store(subsystem, handler)
	}

	return actual.(*slog.Logger)
}

// Install 将指定子系统的 Logger 设为 slog 默认 Logger
func Install(subsystem string) *slog.Logger {
	l := Logger(subsystem)
	slog.SetDefault(l)
	return l
}

// SetLevel 动态设置子系统的日志级别
//
// 示例:
//
//	logger.SetLevel("routing", slog.LevelDebug)
func SetLevel(subsystem string, level slog.Level) {
	if h, ok := handlers.Load(subsystem); ok {
		h.(*subsystemHandler).SetLevel(level)
	}
}

// Discard 返回一个丢弃所有日志的 Logger
//
// 主要用于测试，避免日志输出干扰测试结果。
func Discard() *slog.Logger {
	return slog.New(DiscardHandler())
}

// SetOutput 设置全局日志输出目标
//
// 由于使用了 dynamicWriter，已创建的 Logger 也会输出到新的 writer。
func SetOutput(w io.Writer) {
	globalOutputMu.Lock()
	globalOutput = w
	globalOutputMu.Unlock()
}
