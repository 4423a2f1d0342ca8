package kbucket

import (
	"github.com/dep2p/go-kbucket/internal/core/routing"
	"github.com/dep2p/go-kbucket/pkg/types"
)

// 公共错误定义
var (
	// ErrOutOfBounds 桶索引越界或采样数量非法
	ErrOutOfBounds = types.ErrOutOfBounds

	// ErrMalformedIdentifier 标识符不是合法比特串，或与本地标识符宽度不一致
	ErrMalformedIdentifier = types.ErrMalformedIdentifier

	// ErrNilRandomSource 随机源为空
	ErrNilRandomSource = routing.ErrNilRandomSource

	// ErrInvalidConfig 无效配置
	ErrInvalidConfig = routing.ErrInvalidConfig

	// ErrInvalidSnapshot 无效的路由表快照
	ErrInvalidSnapshot = routing.ErrInvalidSnapshot
)
