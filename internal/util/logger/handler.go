package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// componentKey pkg/lib/log.LazyLogger 写入的组件属性名
const componentKey = "component"

var (
	// globalOutput 全局日志输出目标，默认为 stderr
	globalOutput   io.Writer = os.Stderr
	globalOutputMu sync.RWMutex
)

// dynamicWriter 每次写入时查找 globalOutput
//
// 已创建的 Logger 在 SetOutput 之后也会写到新目标。
type dynamicWriter struct{}

func (w *dynamicWriter) Write(p []byte) (n int, err error) {
	globalOutputMu.RLock()
	output := globalOutput
	globalOutputMu.RUnlock()
	return output.Write(p)
}

// subsystemHandler 支持子系统与组件级别控制的 slog.Handler
//
// 级别由 LevelVar 持有；派生 Handler 默认共享父级的 LevelVar，
// 因此 SetLevel 对 With 派生出的 Logger 同样生效。
// 当 With 携带 component 属性且 KBUCKET_LOG_LEVEL 为该组件单独配置了级别时，
// 派生 Handler 使用独立的 LevelVar。
type subsystemHandler struct {
	subsystem string
	level     *slog.LevelVar
	inner     slog.Handler
}

// newHandler 创建新的子系统 Handler
func newHandler(subsystem string, level slog.Level, format LogFormat) *subsystemHandler {
	opts := &slog.HandlerOptions{
		// 级别在 subsystemHandler.Enabled 中判断，内层不再过滤
		Level:     slog.LevelDebug - 4,
		AddSource: ConfigFromEnv().AddSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "ts"
			}
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(levelToString(lvl))
				}
			}
			return a
		},
	}

	output := &dynamicWriter{}

	var inner slog.Handler
	if format == FormatJSON {
		inner = slog.NewJSONHandler(output, opts)
	} else {
		inner = slog.NewTextHandler(output, opts)
	}
	inner = inner.WithAttrs([]slog.Attr{
		slog.String("subsystem", subsystem),
	})

	lv := &slog.LevelVar{}
	lv.Set(level)

	return &subsystemHandler{
		subsystem: subsystem,
		level:     lv,
		inner:     inner,
	}
}

// Enabled 检查是否启用指定级别
func (h *subsystemHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle 处理日志记录
func (h *subsystemHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

// WithAttrs 添加属性
func (h *subsystemHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	level := h.level
	for _, a := range attrs {
		if a.Key != componentKey {
			continue
		}
		if lvl, ok := ConfigFromEnv().LevelForComponent(a.Value.String()); ok {
			level = &slog.LevelVar{}
			level.Set(lvl)
		}
	}

	return &subsystemHandler{
		subsystem: h.subsystem,
		level:     level,
		inner:     h.inner.WithAttrs(attrs),
	}
}

// WithGroup 添加组
func (h *subsystemHandler) WithGroup(name string) slog.Handler {
	return &subsystemHandler{
		subsystem: h.subsystem,
		level:     h.level,
		inner:     h.inner.WithGroup(name),
	}
}

// SetLevel 动态设置日志级别
func (h *subsystemHandler) SetLevel(level slog.Level) {
	h.level.Set(level)
}

// levelToString 将日志级别转换为小写字符串
func levelToString(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "debug"
	case level < slog.LevelWarn:
		return "info"
	case level < slog.LevelError:
		return "warn"
	default:
		return "error"
	}
}

// discardHandler 丢弃所有日志的 Handler（用于测试）
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// DiscardHandler 返回一个丢弃所有日志的 Handler
func DiscardHandler() slog.Handler {
	return discardHandler{}
}
