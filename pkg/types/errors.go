// Package types 定义 go-kbucket 的公共数据结构
//
// 本文件定义所有公共错误类型。
package types

import "errors"

// ============================================================================
//                              契约错误
// ============================================================================

var (
	// ErrOutOfBounds 索引或采样数量越界
	//
	// 出现在两种场景：
	//   - AddRecord 的桶索引超过当前桶数量
	//   - 采样数量大于候选集合大小
	ErrOutOfBounds = errors.New("index out of bounds")

	// ErrMalformedIdentifier 标识符不是合法的定宽比特串
	ErrMalformedIdentifier = errors.New("malformed identifier")
)
