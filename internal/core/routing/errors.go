package routing

import (
	"errors"
	"fmt"

	"github.com/dep2p/go-kbucket/pkg/types"
)

// 预定义错误
var (
	// ErrNilRandomSource 随机源为空
	ErrNilRandomSource = errors.New("routing: random source is nil")

	// ErrInvalidConfig 无效配置
	ErrInvalidConfig = errors.New("routing: invalid config")

	// ErrInvalidSnapshot 无效的路由表快照
	ErrInvalidSnapshot = errors.New("routing: invalid snapshot")
)

// RoutingError 路由表错误类型
type RoutingError struct {
	Op      string // 操作名称
	Err     error  // 底层错误
	Message string // 错误消息
}

// Error 实现 error 接口
func (e *RoutingError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("routing %s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("routing %s: %v", e.Op, e.Err)
}

// Unwrap 实现错误解包
func (e *RoutingError) Unwrap() error {
	return e.Err
}

// NewRoutingError 创建路由表错误
func NewRoutingError(op string, err error, message string) *RoutingError {
	return &RoutingError{
		Op:      op,
		Err:     err,
		Message: message,
	}
}

// failureReason 把错误归类为指标标签
func failureReason(err error) string {
	switch {
	case errors.Is(err, types.ErrMalformedIdentifier):
		return "malformed_identifier"
	case errors.Is(err, types.ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, ErrNilRandomSource):
		return "nil_random_source"
	default:
		return "other"
	}
}
