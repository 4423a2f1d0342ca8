package routing

import (
	"github.com/google/uuid"

	"github.com/dep2p/go-kbucket/internal/core/rng"
	"github.com/dep2p/go-kbucket/pkg/interfaces"
	"github.com/dep2p/go-kbucket/pkg/lib/log"
	"github.com/dep2p/go-kbucket/pkg/types"
)

var logger = log.Logger("routing/normalize")

// ============================================================================
//                              Normalizer
// ============================================================================

// Normalizer K 桶规范化器
//
// 持有 K、本地节点标识符、选择策略与子桶容量函数。
// 可并发使用，每次调用必须传入独立的随机源。
type Normalizer struct {
	k        int
	localID  string
	local    types.Key
	policy   interfaces.SelectionPolicy
	capacity CapacityFunc
	keys     *keyCache
	reporter interfaces.NormalizeReporter
}

// NewNormalizer 创建规范化器
//
// reporter 可以为 nil。
func NewNormalizer(cfg *Config, reporter interfaces.NormalizeReporter) (*Normalizer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	local, err := types.ParseKey(cfg.LocalID)
	if err != nil {
		return nil, err
	}
	keys, err := newKeyCache(cfg.KeyCacheSize)
	if err != nil {
		return nil, err
	}

	return &Normalizer{
		k:        cfg.BucketSize,
		localID:  cfg.LocalID,
		local:    local,
		policy:   cfg.Policy,
		capacity: cfg.SubBucketCapacity,
		keys:     keys,
		reporter: reporter,
	}, nil
}

// BucketSize 返回目标桶容量 K
func (n *Normalizer) BucketSize() int {
	return n.k
}

// LocalID 返回本地节点标识符
func (n *Normalizer) LocalID() string {
	return n.localID
}

// Policy 返回前序候选池选择策略
func (n *Normalizer) Policy() interfaces.SelectionPolicy {
	return n.policy
}

// Normalize 规范化路由表，返回新表
func (n *Normalizer) Normalize(t *Table, src interfaces.RandomSource) (*Table, error) {
	out, _, err := n.NormalizeWithStats(t, src)
	return out, err
}

// NormalizeWithStats 规范化路由表并返回本次统计
//
// 输入表不会被修改；任一记录标识符无法解析时整次调用失败。
func (n *Normalizer) NormalizeWithStats(t *Table, src interfaces.RandomSource) (*Table, interfaces.NormalizeStats, error) {
	var stats interfaces.NormalizeStats

	if src == nil {
		err := NewRoutingError("normalize", ErrNilRandomSource, "")
		n.reportFailure(err)
		return nil, stats, err
	}
	if t == nil {
		t = NewTable()
	}

	runID := uuid.NewString()
	counting := rng.NewCountingSource(src)
	stats.Buckets = t.Len()

	out := &Table{buckets: make([]Bucket, t.Len())}
	for i := range t.buckets {
		b, fill, err := n.normalizeBucket(t, i, counting)
		if err != nil {
			logger.Warn("路由表规范化失败", "run", runID, "bucket", i, "error", err)
			n.reportFailure(err)
			return nil, stats, err
		}
		out.buckets[i] = b

		switch {
		case fill.passed:
			stats.PassedThrough++
		case fill.previous+fill.next > 0:
			stats.Filled++
		}
		stats.BorrowedPrevious += fill.previous
		stats.BorrowedNext += fill.next
		stats.Shortfall += fill.shortfall
	}
	stats.RandomDraws = counting.Draws()

	logger.Debug("路由表规范化完成",
		"run", runID,
		"buckets", stats.Buckets,
		"filled", stats.Filled,
		"borrowedPrevious", stats.BorrowedPrevious,
		"borrowedNext", stats.BorrowedNext,
		"randomDraws", stats.RandomDraws,
		"shortfall", stats.Shortfall)

	if n.reporter != nil {
		n.reporter.ReportNormalize(stats)
	}
	return out, stats, nil
}

func (n *Normalizer) reportFailure(err error) {
	if n.reporter != nil {
		n.reporter.ReportFailure(failureReason(err))
	}
}

// ============================================================================
//                              单桶规范化
// ============================================================================

// bucketFill 单桶规范化结果统计
type bucketFill struct {
	passed    bool
	previous  int
	next      int
	shortfall int
}

// normalizeBucket 规范化桶 i，只读取原始路由表
func (n *Normalizer) normalizeBucket(t *Table, i int, src interfaces.RandomSource) (Bucket, bucketFill, error) {
	own := t.buckets[i].records
	if len(own) >= n.k {
		return t.buckets[i].clone(), bucketFill{passed: true}, nil
	}

	records := make([]types.Record, 0, n.k)
	records = append(records, own...)
	needed := n.k - len(own)

	previous, err := n.borrowPrevious(t.recordsBefore(i), needed, src)
	if err != nil {
		return Bucket{}, bucketFill{}, err
	}
	records = append(records, previous...)
	needed -= len(previous)

	var next []types.Record
	if needed > 0 {
		next, err = n.borrowNext(t, i, needed, src)
		if err != nil {
			return Bucket{}, bucketFill{}, err
		}
		records = append(records, next...)
	}

	return Bucket{records: records}, bucketFill{
		previous:  len(previous),
		next:      len(next),
		shortfall: n.k - len(records),
	}, nil
}

// borrowPrevious 从前序候选池借入最多 needed 条记录
//
// 候选池不超过需求时全部取用，不消耗随机性；
// 否则按选择策略挑选。
func (n *Normalizer) borrowPrevious(pool []types.Record, needed int, src interfaces.RandomSource) ([]types.Record, error) {
	if len(pool) <= needed {
		return pool, nil
	}

	switch n.policy {
	case interfaces.PolicyClosestFirst:
		sorted, err := n.sortByDistance(pool)
		if err != nil {
			return nil, err
		}
		return sorted[:needed:needed], nil
	default:
		picked, err := rng.Sample(src, needed, pool)
		if err != nil {
			return nil, NewRoutingError("borrow_previous", err, "")
		}
		return picked, nil
	}
}

// borrowNext 从桶 i+1..N-1 借入 needed 条记录
//
// 整桶放得下就整桶取用；第一个放不下的桶按距离排序、
// 切成容量 capacity(i) 的子桶：整块放得下的子桶按距离顺序取用，
// 第一个放不下的子桶随机采样剩余数量。
func (n *Normalizer) borrowNext(t *Table, i, needed int, src interfaces.RandomSource) ([]types.Record, error) {
	var taken []types.Record

	for j := i + 1; j < len(t.buckets) && needed > 0; j++ {
		candidates := t.buckets[j].records
		if len(candidates) <= needed {
			taken = append(taken, candidates...)
			needed -= len(candidates)
			continue
		}

		sorted, err := n.sortByDistance(candidates)
		if err != nil {
			return nil, err
		}

		size := n.capacity(i)
		if size < 1 {
			size = 1
		}
		for start := 0; start < len(sorted) && needed > 0; start += size {
			end := start + size
			if end > len(sorted) || end < start {
				end = len(sorted)
			}
			sub := sorted[start:end]

			if len(sub) <= needed {
				taken = append(taken, sub...)
				needed -= len(sub)
				continue
			}

			picked, err := rng.Sample(src, needed, sub)
			if err != nil {
				return nil, NewRoutingError("borrow_next", err, "")
			}
			taken = append(taken, picked...)
			needed = 0
		}
	}

	return taken, nil
}
