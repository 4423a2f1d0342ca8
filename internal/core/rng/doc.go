// Package rng 提供可复现的随机源与无放回采样
//
// 随机源基于 Mersenne Twister（github.com/seehuhn/mt19937），
// 通过 math/rand 包装后满足 interfaces.RandomSource。
//
// # 快速开始
//
//	src := rng.NewSeeded(42)
//	picked, err := rng.Sample(src, 3, records)
//
// # 可复现性
//
// 相同种子、相同调用序列（相同 n、相同候选顺序）产生相同结果。
// 随机源不是并发安全的，一次规范化调用独占一个实例。
package rng
