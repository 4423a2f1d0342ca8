// Package routing 实现 Kademlia 路由表的 K 桶规范化
//
// 规范化把未满的桶补足到目标容量 K：先从索引更小的桶借入（前序候选池），
// 再从索引更大的桶借入（按到本地节点的 XOR 距离排序并分成子桶）。
// 借入是复制而不是移动，同一条记录可以出现在多个规范化后的桶中。
//
// # 快速开始
//
//	rt := routing.NewTable().
//	    MustAdd(0, "0010", "/ip4/10.0.0.2/tcp/4001").
//	    MustAdd(1, "0001", "/ip4/10.0.0.3/tcp/4001").
//	    MustAdd(1, "0000", "/ip4/10.0.0.4/tcp/4001").
//	    MustAdd(2, "0111", "/ip4/10.0.0.5/tcp/4001")
//
//	n, err := routing.NewNormalizer(routing.DefaultConfig(), nil)
//	normalized, err := n.Normalize(rt, rng.NewSeeded(0))
//
// # 规范化规则
//
// 对每个记录数 s_i < K 的桶 i（只读取原始路由表）：
//
//  1. needed = K - s_i
//  2. 前序候选池 P = 桶 0..i-1 的记录（按索引顺序拼接）
//     - |P| <= needed：全部取用，不消耗随机性
//     - |P| >  needed：按选择策略取 needed 条
//       （uniform-random：无放回均匀采样；closest-first：取距离最近的）
//  3. 依次扫描桶 i+1..N-1：
//     - 整桶放得下：全部取用
//     - 放不下：按距离升序排序，切成容量为 SubBucketCapacity(i)（默认 2^i）的子桶，
//       放得下的子桶整块取用，第一个放不下的子桶中随机采样剩余数量，然后停止
//  4. 结果 = 原有记录 + 前序借入 + 后续借入
//
// s_i >= K 的桶原样保留，不截断。
//
// # 并发
//
// Normalizer 可被多个 goroutine 同时使用，前提是每次调用使用独立的随机源。
// 输入路由表在规范化期间只读。
package routing
