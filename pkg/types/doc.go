// Package types 定义 go-kbucket 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
//   - key.go     - Key 定宽比特串标识符、XOR 距离
//   - record.go  - Record 路由记录（标识符 + 地址）
//   - errors.go  - 公共错误定义
//
// # 值语义
//
// Record 与 Key 都按值传递，创建后不可变。
// 路由表规范化在桶之间复制记录，而不是共享引用。
package types
