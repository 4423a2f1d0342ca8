// Package interfaces 定义 go-kbucket 的公共接口
//
// 一个接口文件对应一个实现目录：
//   - random.go   - 可注入的随机源（internal/core/rng）
//   - routing.go  - 路由表规范化服务（internal/core/routing）
//   - metrics.go  - 规范化指标上报（internal/core/metrics）
package interfaces
