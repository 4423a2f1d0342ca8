// Package interfaces 定义 go-kbucket 公共接口
//
// 本文件定义 RandomSource 接口，规范化过程唯一的可变依赖。
package interfaces

// RandomSource 可注入的均匀随机源
//
// 同一个实例在一次规范化调用期间只能被一个调用方使用。
// *math/rand.Rand 满足此接口。
type RandomSource interface {
	// Intn 返回 [0, n) 内均匀分布的整数，n 必须为正
	Intn(n int) int
}
