// Package kbucket 提供 Kademlia 路由表的 K 桶规范化
//
// 规范化把每个不足 K 条记录的桶补足到 K 条（在记录总数允许的范围内），
// 使对外发布的路由表不暴露各桶真实的占用情况。补充记录只从同一张表的
// 其他桶复制，从不产生新记录。
//
// # 快速开始
//
//	import "github.com/dep2p/go-kbucket"
//
//	// 1. 创建规范化器
//	n, err := kbucket.New(
//	    kbucket.WithBucketSize(4),
//	    kbucket.WithLocalID("0011"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// 2. 构建路由表（桶按顺序创建）
//	rt := kbucket.NewTable().
//	    MustAdd(0, "0010", "RE").
//	    MustAdd(1, "0001", "RE").
//	    MustAdd(1, "0000", "RE").
//	    MustAdd(2, "0111", "RE")
//
//	// 3. 使用可复现的随机源规范化
//	out, err := n.Normalize(rt, kbucket.NewSeededSource(0))
//
// # 补充规则
//
// 对每个记录数 s_i < K 的桶 i：
//
//  1. 前序候选池（桶 0..i-1）不超过需求时全部借入；否则按策略选择
//     （uniform-random 均匀采样，closest-first 取距离最近者）
//  2. 仍有缺口时依次检查桶 i+1..：整桶放得下就整桶借入；否则按 XOR
//     距离排序、切成容量 2^i 的子桶，取整块放得下的子桶，剩余数量从
//     第一个放不下的子桶中随机采样
//
// 记录数 ≥ K 的桶原样保留，不截断。
//
// # 配置
//
// 所有参数都可配置，优先级：Option > WithConfig 传入的统一配置 > 预设 > 默认值。
// 统一配置见 config 包。
package kbucket
